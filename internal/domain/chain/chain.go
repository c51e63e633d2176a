package chain

// ID identifies the network the upstream provider is queried on. It is fixed
// per deployment and never taken from the caller.
type ID string

const (
	Ethereum ID = "eth"
	BSC      ID = "bsc"
	Polygon  ID = "polygon"
)

func (id ID) String() string {
	return string(id)
}
