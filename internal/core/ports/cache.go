package ports

// ReportCache stores rendered report payloads keyed by dataset fingerprint.
type ReportCache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
	Len() int
}
