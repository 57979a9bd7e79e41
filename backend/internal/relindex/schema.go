package relindex

import (
	"strings"

	"github.com/JustUsingaWebsite/carrier-relations/backend/internal/types"
	"github.com/JustUsingaWebsite/carrier-relations/backend/internal/utils"
)

// UnnamedCarrier is the key used for rows whose carrier cell is empty.
const UnnamedCarrier = "Unnamed Carrier"

// Field names a relationship kind held by every carrier entry.
type Field string

const (
	FieldBrokersTo         Field = "brokers_to"
	FieldBrokersThrough    Field = "brokers_through"
	FieldBrokerEntityOf    Field = "broker_entity_of"
	FieldRelationshipOwner Field = "relationship_owner"
)

// RelationFields lists the four relationship kinds in column order.
var RelationFields = []Field{
	FieldBrokersTo,
	FieldBrokersThrough,
	FieldBrokerEntityOf,
	FieldRelationshipOwner,
}

// Column describes one required input column.
type Column struct {
	Header    string // exact header text after trimming
	Field     Field  // empty for the carrier column
	Delimited bool   // comma-separated list vs. single scalar value
}

// Schema is the ordered list of required columns.
var Schema = []Column{
	{Header: "Carrier"},
	{Header: "Brokers to", Field: FieldBrokersTo, Delimited: true},
	{Header: "Brokers through", Field: FieldBrokersThrough, Delimited: true},
	{Header: "broker entity of", Field: FieldBrokerEntityOf},
	{Header: "relationship owner", Field: FieldRelationshipOwner},
}

// TokenSeparator splits delimited cells.
const TokenSeparator = ","

// ExpectedHeader returns the required header names in order.
func ExpectedHeader() []string {
	out := make([]string, len(Schema))
	for i, c := range Schema {
		out[i] = c.Header
	}
	return out
}

// ExpectedHeaderLine is the CSV header line a valid upload starts with.
func ExpectedHeaderLine() string {
	return strings.Join(ExpectedHeader(), ",")
}

// ParseField accepts a field name ("brokers_to") or its column header ("Brokers to").
func ParseField(s string) (Field, bool) {
	s = strings.TrimSpace(s)
	for _, c := range Schema {
		if c.Field == "" {
			continue
		}
		if string(c.Field) == s || c.Header == s {
			return c.Field, true
		}
	}
	return "", false
}

// Record is one input row mapped onto the schema. Values are raw cell text.
type Record struct {
	Carrier           string
	BrokersTo         string
	BrokersThrough    string
	BrokerEntityOf    string
	RelationshipOwner string
}

// Bind validates the header against Schema and maps every row onto a Record.
// Missing columns yield a *SchemaError naming all of them.
func Bind(tbl types.TableData) ([]Record, error) {
	headerIdx := utils.HeaderIndex(tbl)

	positions := make([]int, len(Schema))
	var missing []string
	for i, c := range Schema {
		pos, ok := headerIdx[c.Header]
		if !ok {
			missing = append(missing, c.Header)
			continue
		}
		positions[i] = pos
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Missing: missing}
	}

	records := make([]Record, 0, len(tbl.Rows))
	for _, row := range tbl.Rows {
		records = append(records, Record{
			Carrier:           utils.Cell(row, positions[0]),
			BrokersTo:         utils.Cell(row, positions[1]),
			BrokersThrough:    utils.Cell(row, positions[2]),
			BrokerEntityOf:    utils.Cell(row, positions[3]),
			RelationshipOwner: utils.Cell(row, positions[4]),
		})
	}
	return records, nil
}
