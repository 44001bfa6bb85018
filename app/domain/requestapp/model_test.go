package requestapp

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/manfix/business/domain/requestbus"
	"github.com/jcpaschoal/manfix/business/types/name"
	"github.com/jcpaschoal/manfix/business/types/requesttype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Scheduled dates travel as plain dates, the same format the calendar query
// params use.
func TestScheduledDateFormat(t *testing.T) {
	scheduled := "2026-09-10"

	app := NewRequest{
		EquipmentID:   uuid.New().String(),
		RequestType:   requesttype.Preventive.String(),
		Subject:       "Inspeção semestral",
		Description:   "Inspeção de rotina do compressor",
		ScheduledDate: &scheduled,
	}

	nr, err := toBusNewRequest(app, uuid.New(), uuid.New())
	require.NoError(t, err)
	require.NotNil(t, nr.ScheduledDate)
	assert.Equal(t, time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC), *nr.ScheduledDate)

	req := requestbus.Request{
		ID:            uuid.New(),
		CompanyID:     uuid.New(),
		EquipmentID:   uuid.New(),
		Type:          requesttype.Preventive,
		Subject:       name.MustParse("Inspeção semestral"),
		ScheduledDate: nr.ScheduledDate,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	assert.Equal(t, scheduled, toAppRequest(req).ScheduledDate)
}

func TestScheduledDateRejectsTimestamp(t *testing.T) {
	scheduled := "2026-09-10T08:00:00Z"

	app := NewRequest{
		EquipmentID: uuid.New().String(),
		RequestType: requesttype.Preventive.String(),
		Subject:     "Inspeção semestral",
		Description: "Inspeção de rotina do compressor",
	}
	app.ScheduledDate = &scheduled

	_, err := toBusNewRequest(app, uuid.New(), uuid.New())
	assert.Error(t, err)

	_, err = toBusUpdateRequest(UpdateRequest{ScheduledDate: &scheduled})
	assert.Error(t, err)
}
