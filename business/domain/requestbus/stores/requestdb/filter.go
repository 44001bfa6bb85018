package requestdb

import (
	"bytes"
	"strings"

	"github.com/google/uuid"
	"github.com/jcpaschoal/manfix/business/domain/requestbus"
)

func applyFilter(filter requestbus.QueryFilter, data map[string]any, buf *bytes.Buffer) {
	var wc []string

	if filter.CompanyID != uuid.Nil {
		data["company_id"] = filter.CompanyID
		wc = append(wc, "company_id = :company_id")
	}

	if filter.ID != nil {
		data["request_id"] = *filter.ID
		wc = append(wc, "request_id = :request_id")
	}

	if filter.EquipmentID != nil {
		data["equipment_id"] = *filter.EquipmentID
		wc = append(wc, "equipment_id = :equipment_id")
	}

	if filter.TeamID != nil {
		data["team_id"] = *filter.TeamID
		wc = append(wc, "team_id = :team_id")
	}

	if filter.TechnicianID != nil {
		data["technician_id"] = *filter.TechnicianID
		wc = append(wc, "technician_id = :technician_id")
	}

	if filter.CreatedBy != nil {
		data["created_by"] = *filter.CreatedBy
		wc = append(wc, "created_by = :created_by")
	}

	if filter.Type != nil {
		data["request_type"] = filter.Type.String()
		wc = append(wc, "request_type = :request_type")
	}

	if filter.Status != nil {
		data["status"] = filter.Status.String()
		wc = append(wc, "status = :status")
	}

	if filter.StartScheduledDate != nil {
		data["start_scheduled_date"] = filter.StartScheduledDate.UTC()
		wc = append(wc, "scheduled_date >= :start_scheduled_date")
	}

	if filter.EndScheduledDate != nil {
		data["end_scheduled_date"] = filter.EndScheduledDate.UTC()
		wc = append(wc, "scheduled_date <= :end_scheduled_date")
	}

	if len(wc) > 0 {
		buf.WriteString(" WHERE ")
		buf.WriteString(strings.Join(wc, " AND "))
	}
}
