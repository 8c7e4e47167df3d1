// store/store.go
package store

// Cache namespaces. Raw report blobs hold the remote CSV verbatim;
// extracted blobs hold JSON-serialized per-date aggregates.
const (
	NamespaceReports   = "reports"
	NamespaceExtracted = "extracted"
)

// Store is a namespaced key-to-blob cache. Entries never expire: a written
// blob is authoritative until an explicit overwrite. No locking is done;
// a single process is assumed to own the cache at a time.
type Store interface {
	Has(namespace, key string) (bool, error)
	Get(namespace, key string) ([]byte, error)
	Put(namespace, key string, blob []byte) error
}
