package ports

import "io"

// ComponentDatabasePort gives read access to the hardware component records
// of the SDK.
type ComponentDatabasePort interface {
	// MatchRecords returns the names of all records whose file name starts
	// with prefix. Order is unspecified.
	MatchRecords(prefix string) ([]string, error)
	OpenRecord(name string) (io.ReadCloser, error)
}
