package cmd

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/go-drift/styling/pkg/dom"
	"github.com/go-drift/styling/pkg/property"
	"github.com/go-drift/styling/pkg/sheet"
	"github.com/go-drift/styling/pkg/style"
)

func init() {
	RegisterCommand(&Command{
		Name:  "resolve",
		Short: "Resolve a document against a style sheet",
		Long: `Resolve loads a YAML document description and one or more CSS style
sheets, runs the cascade, and prints the computed values of every element.

The document format nests elements by tag:

  tag: body
  children:
    - tag: div
      classes: menu
      pseudo: [hover]
      style: "width: 50%"

Flags:
  --dp-ratio <f>     device pixel ratio for dp lengths (default 1)
  --viewport <WxH>   containing block size in px (default 1280x720)
  --properties <f>   YAML table of custom property registrations
  --pseudo <id>:<c>  after the first dump, toggle pseudo-class c on the
                     element with the given id and dump what re-resolved`,
		Usage: "styledump resolve [flags] <document.yaml> <sheet.css>...",
		Run:   runResolve,
	})
}

func runResolve(args []string) error {
	dpRatio := 1.0
	viewportW, viewportH := 1280.0, 720.0
	propertiesPath := ""
	pseudoTarget, pseudoClass := "", ""

	var positional []string
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--dp-ratio":
			if i+1 >= len(args) {
				return fmt.Errorf("--dp-ratio requires a value")
			}
			i++
			v, err := strconv.ParseFloat(args[i], 64)
			if err != nil || v <= 0 {
				return fmt.Errorf("invalid --dp-ratio %q", args[i])
			}
			dpRatio = v
		case "--viewport":
			if i+1 >= len(args) {
				return fmt.Errorf("--viewport requires a value like 1280x720")
			}
			i++
			w, h, ok := strings.Cut(args[i], "x")
			wf, errW := strconv.ParseFloat(w, 64)
			hf, errH := strconv.ParseFloat(h, 64)
			if !ok || errW != nil || errH != nil {
				return fmt.Errorf("invalid --viewport %q", args[i])
			}
			viewportW, viewportH = wf, hf
		case "--properties":
			if i+1 >= len(args) {
				return fmt.Errorf("--properties requires a file path")
			}
			i++
			propertiesPath = args[i]
		case "--pseudo":
			if i+1 >= len(args) {
				return fmt.Errorf("--pseudo requires a value like nav:hover")
			}
			i++
			id, class, ok := strings.Cut(args[i], ":")
			if !ok || id == "" || class == "" {
				return fmt.Errorf("invalid --pseudo %q", args[i])
			}
			pseudoTarget, pseudoClass = id, class
		default:
			positional = append(positional, args[i])
		}
	}
	if len(positional) < 2 {
		return fmt.Errorf("resolve requires a document and at least one style sheet\n\nUsage: styledump resolve [flags] <document.yaml> <sheet.css>...")
	}

	registry := property.NewRegistry()
	if propertiesPath != "" {
		data, err := os.ReadFile(propertiesPath)
		if err != nil {
			return err
		}
		if err := registry.RegisterYAML(data); err != nil {
			return fmt.Errorf("custom properties: %w", err)
		}
	}

	styleSheet := sheet.New(registry)
	defer styleSheet.Release()
	for _, path := range positional[1:] {
		css, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if err := styleSheet.LoadString(string(css)); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}

	doc := dom.NewDocument(registry, styleSheet, nil)
	doc.Width, doc.Height = viewportW, viewportH
	doc.SetPixelRatio(dpRatio)
	if err := loadDocument(doc, positional[0]); err != nil {
		return err
	}

	doc.UpdateStyles(func(el *dom.Element, applied style.DirtySet) {
		printElement(el)
	})

	if pseudoTarget != "" {
		target := findByID(doc.Root(), pseudoTarget)
		if target == nil {
			return fmt.Errorf("--pseudo: no element with id %q", pseudoTarget)
		}
		active := !target.Style().IsPseudoClassSet(pseudoClass)
		fmt.Printf("\n-- :%s %s on #%s --\n", pseudoClass, onOff(active), pseudoTarget)
		target.Style().SetPseudoClass(pseudoClass, active)
		doc.UpdateStyles(func(el *dom.Element, applied style.DirtySet) {
			printElement(el)
		})
	}
	return nil
}

func findByID(el *dom.Element, id string) *dom.Element {
	if el.ID() == id {
		return el
	}
	for i := 0; i < el.NumChildren(); i++ {
		if found := findByID(el.Child(i).(*dom.Element), id); found != nil {
			return found
		}
	}
	return nil
}

func onOff(active bool) string {
	if active {
		return "on"
	}
	return "off"
}

func printElement(el *dom.Element) {
	fmt.Printf("%s {\n", elementPath(el))
	v := el.ComputedValues()

	put := func(name, value string) {
		fmt.Printf("  %-17s %s\n", name+":", value)
	}
	put("display", v.Display.String())
	put("position", v.Position.String())
	put("width", fmtLPA(v.Width))
	put("height", fmtLPA(v.Height))
	put("margin", boxLPA(v.MarginTop, v.MarginRight, v.MarginBottom, v.MarginLeft))
	put("padding", boxLP(v.PaddingTop, v.PaddingRight, v.PaddingBottom, v.PaddingLeft))
	put("font-size", fmtPx(v.FontSize))
	put("line-height", fmtPx(v.LineHeight.Value))
	put("color", v.Color.String())
	put("background-color", v.BackgroundColor.String())
	put("overflow", v.OverflowX.String()+" "+v.OverflowY.String())
	put("visibility", v.Visibility.String())
	if v.Opacity != 1 {
		put("opacity", strconv.FormatFloat(v.Opacity, 'g', -1, 64))
	}

	names := make([]string, 0, len(v.Custom))
	for name := range v.Custom {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		put(name, v.Custom[name].String())
	}
	fmt.Println("}")
}

// elementPath renders "body > div.menu#nav" style ancestry for the header.
func elementPath(el *dom.Element) string {
	var parts []string
	for e := el; e != nil; {
		parts = append([]string{elementLabel(e)}, parts...)
		parent, _ := e.Parent().(*dom.Element)
		e = parent
	}
	return strings.Join(parts, " > ")
}

func elementLabel(el *dom.Element) string {
	label := el.Tag()
	for _, class := range el.Style().Classes() {
		label += "." + class
	}
	if el.ID() != "" {
		label += "#" + el.ID()
	}
	return label
}

func fmtPx(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64) + "px"
}

func fmtLP(v style.LengthPercentage) string {
	if v.Type == style.LengthPercentagePercent {
		return strconv.FormatFloat(v.Value, 'g', -1, 64) + "%"
	}
	return fmtPx(v.Value)
}

func fmtLPA(v style.LengthPercentageAuto) string {
	if v.IsAuto() {
		return "auto"
	}
	return fmtLP(style.LengthPercentage{Type: v.Type, Value: v.Value})
}

func boxLPA(top, right, bottom, left style.LengthPercentageAuto) string {
	return fmtLPA(top) + " " + fmtLPA(right) + " " + fmtLPA(bottom) + " " + fmtLPA(left)
}

func boxLP(top, right, bottom, left style.LengthPercentage) string {
	return fmtLP(top) + " " + fmtLP(right) + " " + fmtLP(bottom) + " " + fmtLP(left)
}
