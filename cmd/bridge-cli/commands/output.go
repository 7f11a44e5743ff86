package commands

import (
	"io"
	"math/big"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/olekukonko/tablewriter"
	"github.com/quantumauth-io/bridge-fees/internal/constants"
	"github.com/quantumauth-io/bridge-fees/internal/units"
)

func renderTable(w io.Writer, header []string, rows [][]string) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.AppendBulk(rows)
	table.Render()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// percent renders a fee fraction scaled by 1e18 as a percentage.
func percent(pct *big.Int) string {
	if pct == nil {
		return "-"
	}
	// 1e18 == 100%, so a percentage has 16 decimals
	return units.FormatUnitsTrim(pct, constants.FeePctScaleDecimals-2, 4) + "%"
}

func parseAccount(raw string) (common.Address, error) {
	raw = strings.TrimSpace(raw)
	if !common.IsHexAddress(raw) {
		return common.Address{}, errors.Newf("invalid account %q", raw)
	}
	return common.HexToAddress(raw), nil
}
