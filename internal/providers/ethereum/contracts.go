package ethereum

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// launchpadABIJSON covers the launchpad factory event and the launched token contract.
// Both contracts are addressed through the same ABI since selectors and topics never collide.
const launchpadABIJSON = `[
	{"anonymous":false,"inputs":[{"indexed":true,"name":"token","type":"address"}],"name":"Launch","type":"event"},
	{"anonymous":false,"inputs":[{"indexed":false,"name":"time","type":"uint256"},{"indexed":false,"name":"value","type":"uint256"},{"indexed":false,"name":"mktCap","type":"uint256"}],"name":"PriceChange","type":"event"},
	{"inputs":[],"name":"name","outputs":[{"name":"","type":"string"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"symbol","outputs":[{"name":"","type":"string"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"creator","outputs":[{"name":"","type":"address"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"image","outputs":[{"name":"","type":"string"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"metadata","outputs":[{"name":"","type":"string"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"totalSupply","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"}
]`

// LaunchpadABI is the parsed contract ABI
var LaunchpadABI = mustParseABI(launchpadABIJSON)

func mustParseABI(raw string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(raw))
	if err != nil {
		panic(err)
	}
	return parsed
}
