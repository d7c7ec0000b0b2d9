package officedb

import (
	"bytes"
	"strings"

	"github.com/jcpaschoal/whereabouts/business/domain/officebus"
)

func applyFilter(filter officebus.QueryFilter, data map[string]any, buf *bytes.Buffer) {
	var wc []string

	if filter.ID != nil {
		data["office_id"] = *filter.ID
		wc = append(wc, "office_id = :office_id")
	}

	if filter.Name != nil {
		data["name"] = "%" + filter.Name.String() + "%"
		wc = append(wc, "name LIKE :name")
	}

	if filter.IsPublic != nil {
		data["is_public"] = *filter.IsPublic
		wc = append(wc, "is_public = :is_public")
	}

	if filter.Enabled != nil {
		data["enabled"] = *filter.Enabled
		wc = append(wc, "enabled = :enabled")
	}

	if len(wc) > 0 {
		buf.WriteString(" WHERE ")
		buf.WriteString(strings.Join(wc, " AND "))
	}
}
