package main

import (
	"fmt"
	"io/ioutil"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/larkmoor/forestproof/accumulator"
	"github.com/larkmoor/forestproof/logger"
	"github.com/larkmoor/forestproof/node"
	"github.com/larkmoor/forestproof/rootstore"
)

func main() {
	cfg, args, err := loadConfig(os.Args[1:])
	if err != nil {
		// go-flags already printed the flag problem (or the help)
		os.Exit(1)
	}
	defer logger.CloseLogRotator()

	if len(args) < 1 {
		fmt.Print(usageTrailer)
		os.Exit(1)
	}

	switch args[0] {
	case "commit":
		err = commitCmd(cfg, args[1:])
	case "serve":
		err = serveCmd(cfg)
	case "submit":
		err = submitCmd(cfg, args[1:])
	default:
		fmt.Printf("unknown command %s\n", args[0])
		fmt.Print(usageTrailer)
		os.Exit(1)
	}
	if err != nil {
		logger.MainLog.Errorf("%s: %s", args[0], err.Error())
		os.Exit(1)
	}
}

// commitCmd builds a forest over a file of concatenated 32 byte leaf
// hashes and commits its roots at the given height.
func commitCmd(cfg *config, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: commit <height> <leaf file>")
	}
	height, err := strconv.ParseInt(args[0], 10, 32)
	if err != nil {
		return fmt.Errorf("bad height %s: %s", args[0], err.Error())
	}
	raw, err := ioutil.ReadFile(args[1])
	if err != nil {
		return err
	}
	if len(raw)%32 != 0 {
		return fmt.Errorf("%s: %d bytes, not a multiple of 32", args[1], len(raw))
	}

	leaves := make([]accumulator.Hash, len(raw)/32)
	for i := range leaves {
		copy(leaves[i][:], raw[i*32:])
	}
	f := accumulator.NewForest(leaves)

	store, err := rootstore.Open(cfg.storePath())
	if err != nil {
		return err
	}
	defer store.Close()

	err = store.Put(int32(height), rootstore.RootSet{
		NumLeaves: f.NumLeaves(),
		Roots:     f.Roots(),
	})
	if err != nil {
		return err
	}
	logger.MainLog.Infof("committed %d leaves at height %d", len(leaves), height)
	return nil
}

// serveCmd answers proof submissions until interrupted.
func serveCmd(cfg *config) error {
	store, err := rootstore.Open(cfg.storePath())
	if err != nil {
		return err
	}
	defer store.Close()

	server, err := node.NewServer(store)
	if err != nil {
		return err
	}

	haltRequest := make(chan bool, 1)
	haltAccept := make(chan bool, 1)
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		<-sigs
		logger.MainLog.Infof("shutdown requested")
		haltRequest <- true
	}()

	err = server.Listen(cfg.Listen, haltRequest, haltAccept)
	if err != nil {
		return err
	}
	<-haltAccept
	return nil
}

// submitCmd sends a serialized ProofRequest to a server and prints
// the verdict.
func submitCmd(cfg *config, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: submit <request file>")
	}
	reqFile, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer reqFile.Close()

	var req node.ProofRequest
	err = req.Deserialize(reqFile)
	if err != nil {
		return fmt.Errorf("%s: %s", args[0], err.Error())
	}

	client, err := node.Dial(cfg.Connect, cfg.Proxy)
	if err != nil {
		return err
	}
	defer client.Close()
	logger.MainLog.Infof("connected to %s, root set height %d",
		cfg.Connect, client.Height)

	verdict, err := client.Submit(req)
	if err != nil {
		return err
	}
	if verdict.Accept {
		fmt.Printf("accepted\n")
	} else {
		fmt.Printf("rejected: %s\n", verdict.Reason)
	}
	return nil
}
