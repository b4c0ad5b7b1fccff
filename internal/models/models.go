// Package models declares the record shapes exposed by the Business Central
// API: which schema entity type backs each model, and which of its fields
// client code may write.
package models

// Descriptor describes a generated record shape
type Descriptor struct {
	Name       string   // model name
	SchemaType string   // entity type name in the metadata document
	Fillable   []string // fields client code may set
	Guarded    []string // server-assigned fields, read-only to clients
}

// BalanceSheet lines are fully writable
var BalanceSheet = Descriptor{
	Name:       "BalanceSheet",
	SchemaType: "balanceSheet",
	Fillable: []string{
		"lineNumber",
		"display",
		"balance",
		"lineType",
		"indentation",
		"dateFilter",
	},
}

var CustomerFinancialDetail = Descriptor{
	Name:       "CustomerFinancialDetail",
	SchemaType: "customerFinancialDetail",
	Fillable: []string{
		"number",
		"balance",
		"totalSalesExcludingTax",
		"overdueAmount",
	},
	Guarded: []string{
		"id",
	},
}

var DimensionValue = Descriptor{
	Name:       "DimensionValue",
	SchemaType: "dimensionValue",
	Fillable: []string{
		"code",
		"displayName",
	},
	Guarded: []string{
		"id",
		"lastModifiedDateTime",
	},
}

// GLBudgetEntries uses the API's escaped entity name for G/L budget entries
var GLBudgetEntries = Descriptor{
	Name:       "GLBudgetEntries",
	SchemaType: "G_LBudgetEntries",
	Fillable: []string{
		"entryNo",
		"budgetName",
		"gLAccountNo",
		"businessUnitCode",
		"date",
		"amount",
		"dimensionSetID",
	},
}

// All returns every known descriptor
func All() []Descriptor {
	return []Descriptor{
		BalanceSheet,
		CustomerFinancialDetail,
		DimensionValue,
		GLBudgetEntries,
	}
}

// BySchemaType looks up a descriptor by its entity type name
func BySchemaType(schemaType string) (Descriptor, bool) {
	for _, d := range All() {
		if d.SchemaType == schemaType {
			return d, true
		}
	}
	return Descriptor{}, false
}
