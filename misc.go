package logcore

// noCopy lets go vet's copylocks check flag accidental copies of Environment
// after first use. Lifted directly from quay/zlog's v2/misc.go.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
