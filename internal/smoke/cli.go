package smoke

import "os"

// ShowHelp prints usage information for the smoke tool.
func ShowHelp() {
	os.Stdout.WriteString(`CRM Smoke Test Tool
===================

Runs create/fetch/update/delete round trips and the error contract against a
running CRM server. Rows created by the run are deleted again.

Usage:
  go run ./cmd/crm-smoke [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:8000")
  -timeout duration
        HTTP request timeout (default 10s)
  -verbose
        Log every request
  -help
        Show this help message

Exit status is 1 when any check fails.
`)
}
