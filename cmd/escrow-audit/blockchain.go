package main

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/nspcc-dev/neo-go/pkg/rpcclient"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/gas"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/invoker"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/toju-network/escrow-contract/internal/audit"
	"github.com/toju-network/escrow-contract/rpc/escrow"
)

// wrapper over Neo RPC providing historical escrow contract state.
type remoteBlockchain struct {
	rpc      *rpcclient.Client
	contract util.Uint160
}

// newRemoteBlockChain dials Neo RPC server and checks that the escrow
// contract is deployed. Connection and all requests are done within 15s
// timeout.
func newRemoteBlockChain(ctx context.Context, endpoint string, contract util.Uint160) (*remoteBlockchain, error) {
	c, err := rpcclient.New(ctx, endpoint, rpcclient.Options{
		DialTimeout:    15 * time.Second,
		RequestTimeout: 15 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("RPC client dial: %w", err)
	}

	_, err = c.GetContractStateByHash(contract)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("get state of the escrow contract '%s': %w", contract.StringLE(), err)
	}

	return &remoteBlockchain{
		rpc:      c,
		contract: contract,
	}, nil
}

func (x *remoteBlockchain) close() {
	x.rpc.Close()
}

// version returns the version of the deployed escrow contract.
func (x *remoteBlockchain) version() (*big.Int, error) {
	return escrow.NewReader(invoker.New(x.rpc, nil), x.contract).Version()
}

// Snapshot implements audit.Source. Storage and balance are both taken at
// the latest block.
func (x *remoteBlockchain) Snapshot(ctx context.Context) (*audit.Snapshot, error) {
	nLatestBlock, err := x.rpc.GetBlockCount()
	if err != nil {
		return nil, fmt.Errorf("get number of the latest block: %w", err)
	}
	if nLatestBlock == 0 {
		return nil, fmt.Errorf("empty chain")
	}

	height := nLatestBlock - 1
	s := &audit.Snapshot{Height: height}

	err = x.iterateContractStorage(ctx, height, s.Put)
	if err != nil {
		return nil, err
	}

	s.Balance, err = gas.NewReader(invoker.NewHistoricAtHeight(height, x.rpc, nil)).BalanceOf(x.contract)
	if err != nil {
		return nil, fmt.Errorf("get GAS balance at block #%d: %w", height, err)
	}

	return s, nil
}

// iterateContractStorage iterates over all storage items of the escrow
// contract at the given height and passes them into f.
// iterateContractStorage breaks on any f's error and returns it.
func (x *remoteBlockchain) iterateContractStorage(ctx context.Context, height uint32, f func(key, value []byte) error) error {
	stateRoot, err := x.rpc.GetStateRootByHeight(height)
	if err != nil {
		return fmt.Errorf("get state root at block #%d: %w", height, err)
	}

	var start []byte

	for {
		if err = ctx.Err(); err != nil {
			return err
		}

		res, err := x.rpc.FindStates(stateRoot.Root, x.contract, nil, start, nil)
		if err != nil {
			return fmt.Errorf("get historical storage items of the escrow contract at state root '%s': %w", stateRoot.Root, err)
		}

		for i := range res.Results {
			err = f(res.Results[i].Key, res.Results[i].Value)
			if err != nil {
				return err
			}
		}

		if !res.Truncated {
			return nil
		}

		start = res.Results[len(res.Results)-1].Key
	}
}
