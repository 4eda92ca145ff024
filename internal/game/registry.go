package game

// Conn is the session-facing side of a player connection. Enqueue hands a
// marshaled frame to the connection's outbound queue and reports false when
// the queue is saturated and the frame was dropped. Both methods must not
// block.
type Conn interface {
	Enqueue(frame []byte) bool
	Close()
}

// Registry maps player names to live connections, one connection per name.
// It is not safe for concurrent use; the session guards it with its own lock.
type Registry struct {
	byName map[string]Conn
	byConn map[Conn]string
}

func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]Conn),
		byConn: make(map[Conn]string),
	}
}

// Register binds name to conn. If the name is already bound the previous
// connection is evicted from the registry and returned so the caller can
// close it.
func (r *Registry) Register(name string, conn Conn) (evicted Conn) {
	if old, ok := r.byName[name]; ok {
		delete(r.byConn, old)
		evicted = old
	}
	r.byName[name] = conn
	r.byConn[conn] = name
	return evicted
}

// Unregister removes conn and returns the name it was bound to. It returns
// "" when conn is unknown, which happens when the connection was already
// evicted by a newer login.
func (r *Registry) Unregister(conn Conn) string {
	name, ok := r.byConn[conn]
	if !ok {
		return ""
	}
	delete(r.byConn, conn)
	delete(r.byName, name)
	return name
}

func (r *Registry) Get(name string) (Conn, bool) {
	conn, ok := r.byName[name]
	return conn, ok
}

// NameOf resolves the identity bound to conn, if any.
func (r *Registry) NameOf(conn Conn) (string, bool) {
	name, ok := r.byConn[conn]
	return name, ok
}

func (r *Registry) Has(name string) bool {
	_, ok := r.byName[name]
	return ok
}

func (r *Registry) Len() int {
	return len(r.byName)
}

// Each calls fn for every registered connection. Iteration order is not
// specified.
func (r *Registry) Each(fn func(name string, conn Conn)) {
	for name, conn := range r.byName {
		fn(name, conn)
	}
}
