package teamdb

import (
	"bytes"
	"strings"

	"github.com/google/uuid"
	"github.com/jcpaschoal/manfix/business/domain/teambus"
)

func applyFilter(filter teambus.QueryFilter, data map[string]any, buf *bytes.Buffer) {
	var wc []string

	if filter.CompanyID != uuid.Nil {
		data["company_id"] = filter.CompanyID
		wc = append(wc, "t.company_id = :company_id")
	}

	if filter.ID != nil {
		data["team_id"] = *filter.ID
		wc = append(wc, "t.team_id = :team_id")
	}

	if filter.Name != nil {
		data["name"] = "%" + filter.Name.String() + "%"
		wc = append(wc, "t.name LIKE :name")
	}

	if filter.MemberID != nil {
		data["member_id"] = *filter.MemberID
		wc = append(wc, `EXISTS (SELECT 1 FROM "public"."team_member" AS m WHERE m.team_id = t.team_id AND m.user_id = :member_id)`)
	}

	if len(wc) > 0 {
		buf.WriteString(" WHERE ")
		buf.WriteString(strings.Join(wc, " AND "))
	}
}
