package hris

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Collection names accepted by Records.
const (
	CollectionAccounts     = "accounts"
	CollectionStaff        = "staff"
	CollectionApplications = "applications"
	CollectionOffboardings = "offboardings"
	CollectionLetters      = "letters"
	CollectionDivisions    = "divisions"
)

// Collections lists every collection name.
var Collections = []string{
	CollectionAccounts, CollectionStaff, CollectionApplications,
	CollectionOffboardings, CollectionLetters, CollectionDivisions,
}

// Records returns the named collection, scoped to the viewer, as generic maps
// keyed by the wire field names. Ids that refer to other records get a
// resolved display field next to them ("division", "staff", "sender",
// "recipient").
func (p *PageData) Records(collection string) ([]map[string]any, error) {
	s := p.Scoped()

	var items any
	switch collection {
	case CollectionAccounts:
		items = s.Accounts
	case CollectionStaff:
		items = s.Staff
	case CollectionApplications:
		items = s.Applications
	case CollectionOffboardings:
		items = s.Offboardings
	case CollectionLetters:
		items = s.Letters
	case CollectionDivisions:
		items = s.Divisions
	default:
		return nil, fmt.Errorf("unknown collection %q (want one of %v)", collection, Collections)
	}

	data, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", collection, err)
	}
	var records []map[string]any
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode %s: %w", collection, err)
	}

	for _, r := range records {
		if id, ok := r["division_id"].(string); ok {
			r["division"] = p.DivisionName(id)
		}
		if id, ok := r["staff_id"].(string); ok {
			r["staff"] = p.StaffName(id)
		}
		if id, ok := r["sender_id"].(string); ok {
			r["sender"] = p.StaffName(id)
		}
		if id, ok := r["recipient_id"].(string); ok {
			r["recipient"] = p.StaffName(id)
		}
	}
	if records == nil {
		records = []map[string]any{}
	}
	return records, nil
}

// Columns returns the preferred column order for a collection's table.
func Columns(collection string) []string {
	switch collection {
	case CollectionAccounts:
		return []string{"id", "name", "email", "role", "division", "active"}
	case CollectionStaff:
		return []string{"id", "name", "position", "division", "joined_on"}
	case CollectionApplications:
		return []string{"id", "name", "position", "division", "status", "submitted_on"}
	case CollectionOffboardings:
		return []string{"id", "staff", "last_day", "status", "reason"}
	case CollectionLetters:
		return []string{"id", "subject", "sender", "recipient", "sent_on", "archived"}
	case CollectionDivisions:
		return []string{"id", "name"}
	}
	return nil
}

// RecordKeys returns the union of keys across records, sorted.
func RecordKeys(records []map[string]any) []string {
	seen := map[string]bool{}
	for _, r := range records {
		for k := range r {
			seen[k] = true
		}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
