package p2p

// Command names carried in a message envelope's 12-byte command field.
const (
	CmdVersion     = "version"
	CmdVerack      = "verack"
	CmdAddr        = "addr"
	CmdInv         = "inv"
	CmdGetData     = "getdata"
	CmdNotFound    = "notfound"
	CmdGetBlocks   = "getblocks"
	CmdGetHeaders  = "getheaders"
	CmdHeaders     = "headers"
	CmdBlock       = "block"
	CmdTx          = "tx"
	CmdMerkleBlock = "merkleblock"
	CmdFilterLoad  = "filterload"
	CmdFilterAdd   = "filteradd"
	CmdFilterClear = "filterclear"
	CmdGetAddr     = "getaddr"
	CmdMempool     = "mempool"
	CmdPing        = "ping"
	CmdPong        = "pong"
	CmdReject      = "reject"
	CmdAlert       = "alert"
)

// Reject reason codes, carried as the one-byte code field of a reject
// message.
const (
	RejectMalformed       = 0x01
	RejectInvalid         = 0x10
	RejectObsolete        = 0x11
	RejectDuplicate       = 0x12
	RejectNonstandard     = 0x40
	RejectDust            = 0x41
	RejectInsufficientFee = 0x42
	RejectCheckpoint      = 0x43
)

// Service bits advertised in version and addr messages.
const (
	ServiceNodeNetwork uint64 = 1 << 0
	ServiceNodeBloom   uint64 = 1 << 2
)
