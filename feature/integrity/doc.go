// Package integrity verifies the infrastructure the inventory service depends on.
//
// # Checks Provided
//
//   - Schema: compares the live tables against the GORM model tags (columns and
//     types) and confirms the audit/equipment unique index and the barcode index exist.
//   - Storage: confirms the report bucket and its reports folder exist. The fix
//     option creates whatever is missing.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/schema : Runs the schema check.
//   - GET /integrity/storage : Runs the storage check (supports ?fix=true).
package integrity
