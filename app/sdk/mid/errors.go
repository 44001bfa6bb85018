package mid

import (
	"context"
	"net/http"

	"github.com/jcpaschoal/manfix/app/sdk/errs"
	"github.com/jcpaschoal/manfix/business/sdk/web"
	"github.com/jcpaschoal/manfix/foundation/logger"
)

// Errors handles errors coming out of the call chain. The error is logged
// here once, with the original location, and the response the client sees is
// normalized to the errs taxonomy.
func Errors(log *logger.Logger) web.MidFunc {
	m := func(next web.HandlerFunc) web.HandlerFunc {
		h := func(ctx context.Context, r *http.Request) web.Encoder {
			resp := next(ctx, r)

			err := checkIsError(resp)
			if err == nil {
				return resp
			}

			var appErr *errs.Error

			switch {
			case errs.IsFieldErrors(err):
				fieldErrors := errs.GetFieldErrors(err)
				log.Error(ctx, "handled error during request",
					"err", err,
					"source_err_file", "FieldErrors")
				return fieldErrors

			case errs.IsError(err):
				appErr = errs.GetError(err)

			default:
				appErr = errs.Errorf(errs.Internal, "Internal Server Error")
			}

			log.Error(ctx, "handled error during request",
				"err", err,
				"source_err_file", appErr.FileName,
				"source_err_func", appErr.FuncName)

			if appErr.Code == errs.InternalOnlyLog {
				appErr = errs.Errorf(errs.Internal, "Internal Server Error")
			}

			return appErr
		}

		return h
	}

	return m
}
