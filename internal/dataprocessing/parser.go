package dataprocessing

import (
	"errors"
	"fmt"

	"cbxreport/internal/config"
	apperrors "cbxreport/internal/errors"
	"cbxreport/internal/xmltree"
	"cbxreport/pkg/contracts/domain"
)

// Namespaces used by Buildsoft take-off documents.
const (
	NamespaceDTO = "http://schemas.datacontract.org/2004/07/Buildsoft.PhoenixTakeOff.DataEntities.DataTransferObjects"
	NamespaceBT2 = "http://www.buildsoft.com.au/xmlschemas/2012/05/BT2"
)

// rateItemFields lists the elements every rate item must carry, in column order.
var rateItemFields = []string{"Description", "Rate", "Quantity", "Unit", "Total", "WastageFactor", "Factor"}

// Parser decodes a take-off document tree into trade nodes.
type Parser struct {
	maxDepth int
}

// NewParser creates a parser that rejects trade hierarchies nested deeper than maxDepth.
func NewParser(maxDepth int) *Parser {
	if maxDepth <= 0 {
		maxDepth = config.DefaultMaxDepth
	}
	return &Parser{maxDepth: maxDepth}
}

// ParseDocument returns the top-level trade nodes found under
// RootTradeContainer/TradeNodes of the document element.
func (p *Parser) ParseDocument(root *xmltree.Element) ([]domain.TradeNode, error) {
	if root == nil {
		return nil, apperrors.NewStructureError("document has no root element")
	}
	container := root.Child(NamespaceDTO, "RootTradeContainer")
	if container == nil {
		return nil, apperrors.NewStructureError("RootTradeContainer element not found")
	}
	list := container.Child(NamespaceDTO, "TradeNodes")
	if list == nil {
		return nil, apperrors.NewStructureError("TradeNodes element not found under RootTradeContainer")
	}
	return p.parseTradeNodes(list, 0, "")
}

func (p *Parser) parseTradeNodes(list *xmltree.Element, depth int, path string) ([]domain.TradeNode, error) {
	if depth > p.maxDepth {
		return nil, apperrors.NewStructureError(fmt.Sprintf("trade hierarchy exceeds maximum depth %d", p.maxDepth)).
			WithContext("path", path)
	}

	elems := list.ChildrenNamed(NamespaceDTO, "TradeNode")
	nodes := make([]domain.TradeNode, 0, len(elems))
	for _, el := range elems {
		node, err := p.parseTradeNode(el, depth, path)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

func (p *Parser) parseTradeNode(el *xmltree.Element, depth int, parentPath string) (domain.TradeNode, error) {
	code, _ := el.ChildText(NamespaceDTO, "Code")
	billRef, _ := el.ChildText(NamespaceDTO, "BillReference")
	description, _ := el.ChildText(NamespaceDTO, "Description")

	node := domain.TradeNode{
		Code:          code,
		Description:   description,
		BillReference: billRef,
	}
	path := JoinPath(parentPath, code)

	components := el.Child(NamespaceDTO, "EstimatingComponents")
	for _, comp := range components.ChildrenNamed(NamespaceDTO, "EstimatingComponent") {
		node.Components = append(node.Components, parseComponent(comp))
	}

	if childList := el.Child(NamespaceDTO, "TradeNodes"); childList != nil {
		children, err := p.parseTradeNodes(childList, depth+1, path)
		if err != nil {
			return domain.TradeNode{}, err
		}
		node.Children = children
	}

	// Only leaves report rate items, so sheets under branch nodes are never decoded.
	if node.IsLeaf() {
		if sheet := el.Find(NamespaceDTO, "CompositeRateSheet"); sheet != nil {
			rs, err := parseRateSheet(sheet, path)
			if err != nil {
				return domain.TradeNode{}, err
			}
			node.RateSheet = rs
		}
	}

	return node, nil
}

func parseComponent(el *xmltree.Element) domain.EstimatingComponent {
	fields := make([]domain.Field, 0, len(el.Children))
	for _, child := range el.Children {
		fields = append(fields, domain.Field{Name: child.Name.Local, Value: child.Text()})
	}
	return domain.EstimatingComponent{Fields: fields}
}

func parseRateSheet(sheet *xmltree.Element, path string) (*domain.RateSheet, error) {
	elems := sheet.ChildrenNamed(NamespaceBT2, "RateItem")
	rs := &domain.RateSheet{Items: make([]domain.RateItem, 0, len(elems))}
	for i, el := range elems {
		item, err := parseRateItem(el)
		if err != nil {
			var appErr *apperrors.AppError
			if errors.As(err, &appErr) {
				appErr.WithContext("path", path).WithContext("item_index", i)
			}
			return nil, err
		}
		rs.Items = append(rs.Items, item)
	}
	return rs, nil
}

func parseRateItem(el *xmltree.Element) (domain.RateItem, error) {
	values := make(map[string]string, len(rateItemFields))
	for _, name := range rateItemFields {
		v, ok := el.ChildText(NamespaceBT2, name)
		if !ok {
			return domain.RateItem{}, apperrors.NewMissingFieldError(name)
		}
		values[name] = v
	}

	item := domain.RateItem{
		Description:   values["Description"],
		Rate:          values["Rate"],
		Quantity:      values["Quantity"],
		Unit:          values["Unit"],
		Total:         values["Total"],
		WastageFactor: values["WastageFactor"],
		Factor:        values["Factor"],
	}

	assigned := el.Child(NamespaceBT2, "RateCodes").
		Child(NamespaceDTO, "JobSortCodeData").
		Child(NamespaceDTO, "AssignedCode")
	if assigned != nil {
		item.AssignedCode = assigned.Text()
		item.HasAssignedCode = true
	}

	return item, nil
}
