package interlog

// Storage is the minimal durability interface a [Log] requires from its
// collaborator. A log owns exactly one Storage and never branches on its
// concrete type.
//
// Append must be synchronous and durable: once it returns nil, the bytes
// must survive a process crash. It returns the number of bytes actually
// written, which must equal len(p) on success.
//
// ReadAt must fill dst completely, copying len(dst) bytes starting at
// offset bytes into the storage's append history.
//
// github.com/abletheabove/interlog/pkg/storage provides two
// implementations: a durable file-backed one and an in-memory one for
// tests and the simulator.
type Storage interface {
	Append(p []byte) (int, error)
	ReadAt(dst []byte, offset int64) error
}
