package domain

import "time"

// Audit actions recorded in the append-only log table.
const (
	AuditActionSearch      = "SEARCH"
	AuditActionCreate      = "CREATE"
	AuditActionUpdate      = "UPDATE"
	AuditActionDelete      = "DELETE"
	AuditActionGenerateDoc = "GENERATE_DOC"
	AuditActionPrint       = "PRINT"
)

// AuditResource tags an audit entry with the affected relation. Each module
// writes a fixed schema/table/oid triple.
type AuditResource struct {
	SchemaName string
	TableName  string
	OID        string
}

var (
	AuditResourceDebtors      = AuditResource{SchemaName: "ower", TableName: "ower", OID: "16504"}
	AuditResourceGroups       = AuditResource{SchemaName: "ower", TableName: "kindergarten_groups", OID: "16505"}
	AuditResourceChildren     = AuditResource{SchemaName: "ower", TableName: "children_roster", OID: "16506"}
	AuditResourceCalls        = AuditResource{SchemaName: "ower", TableName: "debtor_calls", OID: "16507"}
	AuditResourceKindergarten = AuditResource{SchemaName: "ower", TableName: "kindergarten_debt", OID: "16508"}
	AuditResourceAttendance   = AuditResource{SchemaName: "ower", TableName: "attendance", OID: "16509"}
)

// AuditEntry is one append-only record of who did what to which row.
type AuditEntry struct {
	RowPKID         *int64
	UID             *int64
	Action          string
	ClientAddr      string
	ApplicationName string
	ActionStamp     time.Time
	Resource        AuditResource
}
