package platform

// NoticeRecorder is a Notifier that keeps every notice shown
type NoticeRecorder struct {
	Notices []string
}

func (nr *NoticeRecorder) Notify(msg string) {
	nr.Notices = append(nr.Notices, msg)
}

func (nr *NoticeRecorder) Last() string {
	if len(nr.Notices) == 0 {
		return ""
	}
	return nr.Notices[len(nr.Notices)-1]
}

// DispatcherStub records dispatched requests instead of carrying them out
type DispatcherStub struct {
	Requests    []Request
	Unsupported map[Kind]bool
	DispatchErr error
}

func (ds *DispatcherStub) CanHandle(req Request) bool {
	return !ds.Unsupported[req.Kind()]
}

func (ds *DispatcherStub) Dispatch(req Request) error {
	if ds.DispatchErr != nil {
		return ds.DispatchErr
	}
	if ds.Unsupported[req.Kind()] {
		return ErrNoHandler
	}

	ds.Requests = append(ds.Requests, req)
	return nil
}

func (ds *DispatcherStub) Last() Request {
	if len(ds.Requests) == 0 {
		return nil
	}
	return ds.Requests[len(ds.Requests)-1]
}

// PermissionsStub answers permission requests with Answer. When Answer is nil
// requests stay pending until Resolve is called.
type PermissionsStub struct {
	Grants   map[Permission]bool
	Answer   *bool
	Requests int
	pending  []*Handshake
}

func (ps *PermissionsStub) Granted(p Permission) bool {
	return ps.Grants[p]
}

func (ps *PermissionsStub) Request(p Permission, onResult func(granted bool)) {
	ps.Requests++

	handshake := NewHandshake(func(granted bool) {
		if ps.Grants == nil {
			ps.Grants = make(map[Permission]bool)
		}
		ps.Grants[p] = granted
		onResult(granted)
	})

	if ps.Answer != nil {
		handshake.Resolve(*ps.Answer)
		return
	}
	ps.pending = append(ps.pending, handshake)
}

// Resolve settles every pending request with granted
func (ps *PermissionsStub) Resolve(granted bool) {
	pending := ps.pending
	ps.pending = nil
	for _, handshake := range pending {
		handshake.Resolve(granted)
	}
}
