package control

// CtrlOptions carries listener socket options, 1 to set 0 to leave.
type CtrlOptions struct {
	ReuseAddr int
	ReusePort int
}
