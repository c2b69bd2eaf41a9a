package rootstore

import "github.com/btcsuite/btclog"

// log is the package wide logger.  Nothing gets logged until
// UseLogger wires a real one in.
var log = btclog.Disabled

// UseLogger tells the package to log through the given logger.
func UseLogger(logger btclog.Logger) {
	log = logger
}
