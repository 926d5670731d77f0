package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zip"

	"cbxreport/internal/config"
)

// Namespaces of the take-off document, repeated here so fixtures do not
// depend on the packages under test.
const (
	TakeoffNamespaceDTO = "http://schemas.datacontract.org/2004/07/Buildsoft.PhoenixTakeOff.DataEntities.DataTransferObjects"
	TakeoffNamespaceBT2 = "http://www.buildsoft.com.au/xmlschemas/2012/05/BT2"
)

// TakeoffMember is the document member name inside a CBX archive.
const TakeoffMember = config.DefaultMember

// TakeoffDoc wraps trade node markup in the take-off document envelope. The
// BT2 namespace is bound to the "b" prefix.
func TakeoffDoc(nodes ...string) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="utf-8"?>
<TakeoffJob xmlns="%s" xmlns:b="%s">
  <RootTradeContainer>
    <TradeNodes>%s</TradeNodes>
  </RootTradeContainer>
</TakeoffJob>`, TakeoffNamespaceDTO, TakeoffNamespaceBT2, strings.Join(nodes, ""))
}

// TradeNodeXML renders a trade node. components are rendered as
// EstimatingComponent elements with one child per field, in order.
func TradeNodeXML(code, description, billRef string, components [][2]string, inner string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<TradeNode><Code>%s</Code><Description>%s</Description>", code, description)
	if billRef != "" {
		fmt.Fprintf(&b, "<BillReference>%s</BillReference>", billRef)
	}
	if len(components) > 0 {
		b.WriteString("<EstimatingComponents><EstimatingComponent>")
		for _, f := range components {
			fmt.Fprintf(&b, "<%[1]s>%[2]s</%[1]s>", f[0], f[1])
		}
		b.WriteString("</EstimatingComponent></EstimatingComponents>")
	}
	b.WriteString(inner)
	b.WriteString("</TradeNode>")
	return b.String()
}

// ChildrenXML wraps child trade nodes in a TradeNodes list.
func ChildrenXML(nodes ...string) string {
	return "<TradeNodes>" + strings.Join(nodes, "") + "</TradeNodes>"
}

// RateSheetXML wraps rate items in a composite rate sheet.
func RateSheetXML(items ...string) string {
	return "<CompositeRateSheet>" + strings.Join(items, "") + "</CompositeRateSheet>"
}

// RateItemXML renders a complete rate item with WastageFactor and Factor of 1.
// An empty assigned code omits the RateCodes block.
func RateItemXML(desc, rate, qty, unit, total, assigned string) string {
	return RateItemFactorsXML(desc, rate, qty, unit, total, "1", "1", assigned)
}

// RateItemFactorsXML is RateItemXML with explicit wastage and factor values.
func RateItemFactorsXML(desc, rate, qty, unit, total, wastage, factor, assigned string) string {
	codes := ""
	if assigned != "" {
		codes = fmt.Sprintf(`<b:RateCodes><JobSortCodeData><AssignedCode>%s</AssignedCode></JobSortCodeData></b:RateCodes>`, assigned)
	}
	return fmt.Sprintf(`<b:RateItem><b:Description>%s</b:Description><b:Rate>%s</b:Rate><b:Quantity>%s</b:Quantity><b:Unit>%s</b:Unit><b:Total>%s</b:Total><b:WastageFactor>%s</b:WastageFactor><b:Factor>%s</b:Factor>%s</b:RateItem>`,
		desc, rate, qty, unit, total, wastage, factor, codes)
}

// WriteArchive writes a zip archive holding members into dir and returns its path.
func WriteArchive(t *testing.T, dir, name string, members map[string]string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create archive: %v", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	for member, body := range members {
		w, err := zw.Create(member)
		if err != nil {
			t.Fatalf("create member %s: %v", member, err)
		}
		if _, err := w.Write([]byte(body)); err != nil {
			t.Fatalf("write member %s: %v", member, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close archive: %v", err)
	}
	return path
}

// WriteTakeoffArchive writes a CBX archive whose take-off document holds nodes.
func WriteTakeoffArchive(t *testing.T, dir, name string, nodes ...string) string {
	t.Helper()
	return WriteArchive(t, dir, name, map[string]string{TakeoffMember: TakeoffDoc(nodes...)})
}
