package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// NoDetailText is returned for detail values that have no supported shape.
const NoDetailText = "No detailed description available."

type detailKind int

const (
	detailInvalid detailKind = iota
	detailString
	detailScalar
	detailList
	detailMap
)

// DetailNode is one node of a detailed_description tree: a string, an ordered
// sequence, or a mapping. Mapping keys keep document order, which the
// formatter depends on; encoding/json maps would lose it, hence the manual
// token walk in UnmarshalJSON.
type DetailNode struct {
	kind detailKind
	text string
	list []DetailNode
	keys []string
	vals []DetailNode
}

func (n *DetailNode) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	node, err := decodeDetail(dec)
	if err != nil {
		return err
	}
	*n = node
	return nil
}

func decodeDetail(dec *json.Decoder) (DetailNode, error) {
	tok, err := dec.Token()
	if err != nil {
		return DetailNode{}, err
	}
	switch t := tok.(type) {
	case string:
		return DetailNode{kind: detailString, text: t}, nil
	case json.Number:
		return DetailNode{kind: detailScalar, text: t.String()}, nil
	case bool:
		return DetailNode{kind: detailScalar, text: strconv.FormatBool(t)}, nil
	case nil:
		return DetailNode{kind: detailInvalid}, nil
	case json.Delim:
		switch t {
		case '[':
			n := DetailNode{kind: detailList}
			for dec.More() {
				item, err := decodeDetail(dec)
				if err != nil {
					return DetailNode{}, err
				}
				n.list = append(n.list, item)
			}
			if _, err := dec.Token(); err != nil {
				return DetailNode{}, err
			}
			return n, nil
		case '{':
			n := DetailNode{kind: detailMap}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return DetailNode{}, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return DetailNode{}, fmt.Errorf("detail: non-string object key %v", keyTok)
				}
				val, err := decodeDetail(dec)
				if err != nil {
					return DetailNode{}, err
				}
				n.keys = append(n.keys, key)
				n.vals = append(n.vals, val)
			}
			if _, err := dec.Token(); err != nil {
				return DetailNode{}, err
			}
			return n, nil
		}
	}
	return DetailNode{}, fmt.Errorf("detail: unexpected token %v", tok)
}

// FormatDetail renders a detail tree into display text. It is total: any
// unsupported shape (absent field, null, bare number) degrades to NoDetailText.
// The asymmetry between collection and scalar rendering (bold headers for
// collections, inline for scalars) is part of the user-facing contract.
func FormatDetail(n DetailNode) string {
	switch n.kind {
	case detailString:
		return n.text
	case detailList:
		return formatItems(n.list)
	case detailMap:
		var b strings.Builder
		for i, key := range n.keys {
			v := n.vals[i]
			switch v.kind {
			case detailMap:
				fmt.Fprintf(&b, "*%s:*\n", key)
				lines := make([]string, 0, len(v.keys))
				for j, sub := range v.keys {
					lines = append(lines, fmt.Sprintf("  - %s: %s", sub, v.vals[j].scalarText()))
				}
				b.WriteString(strings.Join(lines, "\n"))
				b.WriteString("\n")
			case detailList:
				fmt.Fprintf(&b, "*%s:*\n", key)
				b.WriteString(formatItems(v.list))
				b.WriteString("\n")
			default:
				fmt.Fprintf(&b, "*%s:* %s\n", key, v.scalarText())
			}
		}
		return b.String()
	default:
		return NoDetailText
	}
}

func formatItems(items []DetailNode) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, "  - "+item.scalarText())
	}
	return strings.Join(lines, "\n")
}

func (n DetailNode) scalarText() string {
	switch n.kind {
	case detailString, detailScalar:
		return n.text
	case detailList, detailMap:
		return FormatDetail(n)
	default:
		return NoDetailText
	}
}
