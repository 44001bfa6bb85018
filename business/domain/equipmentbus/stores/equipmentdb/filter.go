package equipmentdb

import (
	"bytes"
	"strings"

	"github.com/google/uuid"
	"github.com/jcpaschoal/manfix/business/domain/equipmentbus"
)

func applyFilter(filter equipmentbus.QueryFilter, data map[string]any, buf *bytes.Buffer) {
	var wc []string

	if filter.CompanyID != uuid.Nil {
		data["company_id"] = filter.CompanyID
		wc = append(wc, "e.company_id = :company_id")
	}

	if filter.ID != nil {
		data["equipment_id"] = *filter.ID
		wc = append(wc, "e.equipment_id = :equipment_id")
	}

	if filter.Name != nil {
		data["name"] = "%" + filter.Name.String() + "%"
		wc = append(wc, "e.name LIKE :name")
	}

	if filter.SerialNumber != nil {
		data["serial_number"] = *filter.SerialNumber
		wc = append(wc, "e.serial_number = :serial_number")
	}

	if filter.TeamID != nil {
		data["team_id"] = *filter.TeamID
		wc = append(wc, "e.team_id = :team_id")
	}

	if filter.IsScrapped != nil {
		data["is_scrapped"] = *filter.IsScrapped
		wc = append(wc, "e.is_scrapped = :is_scrapped")
	}

	if len(wc) > 0 {
		buf.WriteString(" WHERE ")
		buf.WriteString(strings.Join(wc, " AND "))
	}
}
