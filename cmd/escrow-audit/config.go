package main

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/util"
)

type config struct {
	RPCEndpoint string        `env:"ESCROW_RPC_ENDPOINT,required"`
	Contract    util.Uint160  `env:"ESCROW_CONTRACT,required"`
	Interval    time.Duration `env:"ESCROW_AUDIT_INTERVAL" envDefault:"1m"`
	Once        bool          `env:"ESCROW_AUDIT_ONCE" envDefault:"false"`
	LogLevel    string        `env:"LOG_LEVEL" envDefault:"INFO"`
	MetricsPort int           `env:"METRICS_PORT" envDefault:"9010"`
}

func loadConfig() (config, error) {
	var c config
	err := env.ParseWithFuncs(&c, map[reflect.Type]env.ParserFunc{
		reflect.TypeOf(util.Uint160{}): func(v string) (interface{}, error) {
			return parseContract(v)
		},
	})
	if err != nil {
		return c, err
	}
	if c.RPCEndpoint == "" {
		return c, errors.New("missing Neo RPC endpoint")
	}
	if c.Contract.Equals(util.Uint160{}) {
		return c, errors.New("missing escrow contract")
	}
	if c.Interval <= 0 {
		return c, fmt.Errorf("invalid audit interval %s", c.Interval)
	}
	return c, nil
}

// parseContract accepts both Neo address and LE hex script hash with
// optional 0x prefix.
func parseContract(s string) (util.Uint160, error) {
	if h, err := address.StringToUint160(s); err == nil {
		return h, nil
	}
	h, err := util.Uint160DecodeStringLE(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return h, fmt.Errorf("invalid contract %q: neither address nor script hash", s)
	}
	return h, nil
}
