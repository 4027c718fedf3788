package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhamidi/phint/php"
	"github.com/dhamidi/phint/php/phpdoc"
	"github.com/dhamidi/phint/php/typehint"
	"github.com/dhamidi/phint/project"
	"github.com/spf13/cobra"
)

func newDocCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "doc <name>",
		Short: "Show the documentation governing a PHP symbol",
		Long: `Show the docblock that applies to a class, method, or function,
after following {@inheritdoc} and absent blocks up the inheritance
chain.

The name can be:
  - A fully qualified class name (e.g. Acme\Logger)
  - A class member (e.g. Acme\Logger::log)
  - A free function (e.g. Acme\make_logger)

Sources are read from the composer project in the target directory,
or from the whole directory when no composer.json is present.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoc(dir, args[0])
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "project directory to index")

	return cmd
}

func runDoc(dir, name string) error {
	index, err := buildProjectIndex(dir)
	if err != nil {
		return err
	}
	resolver := typehint.NewResolver(index)

	className, member := splitDocName(name)

	if member == "" {
		if class := index.Class(className); class != nil {
			printClassDoc(class)
			return nil
		}
		if fn := index.Function(className); fn != nil {
			printBlock(fn.DocBlock)
			fmt.Printf("function %s\n", fn.Name)
			return nil
		}
		return fmt.Errorf("symbol %s not found", name)
	}

	class := index.Class(className)
	if class == nil {
		return fmt.Errorf("class %s not found", className)
	}
	method := class.Method(member)
	if method == nil {
		return fmt.Errorf("method %s not found in %s", member, class.Name)
	}

	sym := typehint.Symbol{
		Kind:      class.Kind,
		Namespace: class.Namespace,
		Class:     class.SimpleName,
		Member:    member,
	}
	doc := resolver.Resolve(sym)
	if doc == nil {
		fmt.Printf("%s::%s has no documentation\n", class.Name, method.Name)
		return nil
	}

	printBlock(doc)
	fmt.Printf("%s function %s::%s\n", method.Visibility, class.Name, method.Name)

	for _, p := range method.Params {
		if hint, ok := resolver.ParamHint(sym, p.Name); ok && p.TypeText == "" {
			fmt.Printf("    $%s can be declared as %s\n", p.Name, hintString(hint))
		}
	}
	if hint, ok := resolver.ReturnHint(sym); ok && !method.HasReturnType {
		fmt.Printf("    return type can be declared as %s\n", hintString(hint))
	}
	return nil
}

// buildProjectIndex indexes the composer project's autoload directories,
// falling back to every .php file under dir.
func buildProjectIndex(dir string) (*php.Index, error) {
	var files []string

	if proj, err := project.LoadFrom(dir); err == nil {
		files, err = proj.PHPFiles(true)
		if err != nil {
			return nil, err
		}
	} else {
		walkErr := filepath.Walk(dir, func(p string, info os.FileInfo, err error) error {
			if err != nil {
				return nil
			}
			if info.IsDir() {
				if info.Name() == "vendor" || (strings.HasPrefix(info.Name(), ".") && p != dir) {
					return filepath.SkipDir
				}
				return nil
			}
			if filepath.Ext(p) == ".php" {
				files = append(files, p)
			}
			return nil
		})
		if walkErr != nil {
			return nil, walkErr
		}
	}

	var classes []*php.ClassModel
	var functions []*php.FunctionModel
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			continue
		}
		model := php.ParseFile(data, filepath.Base(file))
		classes = append(classes, model.Classes...)
		functions = append(functions, model.Functions...)
	}
	return php.NewIndex(classes, functions), nil
}

// splitDocName separates "Acme\Logger::log" into class and member parts.
func splitDocName(name string) (string, string) {
	if idx := strings.Index(name, "::"); idx >= 0 {
		return name[:idx], name[idx+2:]
	}
	return name, ""
}

func printClassDoc(class *php.ClassModel) {
	printBlock(class.DocBlock)

	var sb strings.Builder
	if class.IsAbstract {
		sb.WriteString("abstract ")
	}
	if class.IsFinal {
		sb.WriteString("final ")
	}
	sb.WriteString(string(class.Kind))
	sb.WriteString(" ")
	sb.WriteString(class.Name)
	if class.Parent != "" {
		sb.WriteString(" extends ")
		sb.WriteString(class.Parent)
	}
	if len(class.Interfaces) > 0 {
		if class.Kind == php.SymbolInterface {
			sb.WriteString(" extends ")
		} else {
			sb.WriteString(" implements ")
		}
		sb.WriteString(strings.Join(class.Interfaces, ", "))
	}
	fmt.Println(sb.String())

	if len(class.Methods) > 0 {
		fmt.Println("\nMethods:")
		for _, m := range class.Methods {
			fmt.Printf("    %s function %s(%s)\n", m.Visibility, m.Name, formatParams(m.Params))
		}
	}
}

func printBlock(doc *phpdoc.DocBlock) {
	if doc == nil {
		return
	}
	if summary := doc.Summary(); summary != "" {
		fmt.Println(summary)
		fmt.Println()
	}
}

func formatParams(params []php.ParameterModel) string {
	var parts []string
	for _, p := range params {
		var sb strings.Builder
		if p.TypeText != "" {
			sb.WriteString(p.TypeText)
			sb.WriteString(" ")
		}
		if p.ByRef {
			sb.WriteString("&")
		}
		if p.Variadic {
			sb.WriteString("...")
		}
		sb.WriteString("$")
		sb.WriteString(p.Name)
		parts = append(parts, sb.String())
	}
	return strings.Join(parts, ", ")
}

func hintString(hint typehint.Hint) string {
	if hint.Nullable {
		return "?" + hint.Name
	}
	return hint.Name
}
