package analyzer

import (
	"context"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/tools/go/packages"
)

// Analyze loads Go packages from dir and collects every top-level function,
// method and named type together with its doc comment.
func Analyze(ctx context.Context, dir string, opts AnalyzeOptions, logger *slog.Logger) (*Result, error) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedSyntax |
			packages.NeedTypes | packages.NeedTypesInfo | packages.NeedModule,
		Dir:     dir,
		Context: ctx,
	}

	pkgs, err := packages.Load(cfg, "./...")
	if err != nil {
		return nil, fmt.Errorf("loading packages: %w", err)
	}

	logger.Info("packages loaded", "packages_count", len(pkgs))

	// Log packages with errors but continue
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			logger.Warn("package load error", "package", pkg.PkgPath, "error", e.Msg)
		}
	}

	result := &Result{}
	seen := make(map[string]bool)

	add := func(sym Symbol) {
		if seen[sym.Key] {
			return
		}
		seen[sym.Key] = true
		result.Symbols = append(result.Symbols, sym)
		logger.Debug("found symbol", "key", sym.Key, "kind", sym.Kind, "documented", sym.Doc != "")
	}

	for _, pkg := range pkgs {
		if result.ModulePath == "" && pkg.Module != nil {
			result.ModulePath = pkg.Module.Path
		}
		for _, file := range pkg.Syntax {
			for _, decl := range file.Decls {
				switch d := decl.(type) {
				case *ast.FuncDecl:
					add(funcSymbol(pkg, d, dir))
				case *ast.GenDecl:
					if d.Tok != token.TYPE {
						continue
					}
					for _, spec := range d.Specs {
						ts, ok := spec.(*ast.TypeSpec)
						if !ok {
							continue
						}
						doc := ts.Doc
						if doc == nil && len(d.Specs) == 1 {
							doc = d.Doc
						}
						add(typeSymbol(pkg, ts, doc, dir))
					}
				}
			}
		}
	}

	sort.Slice(result.Symbols, func(i, j int) bool {
		return result.Symbols[i].Key < result.Symbols[j].Key
	})

	logger.Info("analysis complete", "symbols", len(result.Symbols), "module", result.ModulePath)

	return result, nil
}

func funcSymbol(pkg *packages.Package, fd *ast.FuncDecl, moduleRoot string) Symbol {
	sym := Symbol{
		Name:       fd.Name.Name,
		PkgPath:    pkg.PkgPath,
		PkgName:    pkg.Name,
		Kind:       KindFunc,
		Signature:  fd.Name.Name + "()",
		Doc:        fd.Doc.Text(),
		SourceFile: resolveSourceFile(pkg.Fset, fd.Pos(), moduleRoot),
	}
	if fd.Recv != nil && len(fd.Recv.List) > 0 {
		sym.Kind = KindMethod
		sym.Receiver = receiverName(fd.Recv.List[0].Type)
	}
	if pkg.TypesInfo != nil {
		if fn, ok := pkg.TypesInfo.Defs[fd.Name].(*types.Func); ok {
			sym.Signature = formatSignature(fn)
		}
	}
	sym.Key = symbolKey(sym.PkgPath, sym.Receiver, sym.Name)
	return sym
}

func typeSymbol(pkg *packages.Package, ts *ast.TypeSpec, doc *ast.CommentGroup, moduleRoot string) Symbol {
	sym := Symbol{
		Key:        symbolKey(pkg.PkgPath, "", ts.Name.Name),
		Name:       ts.Name.Name,
		PkgPath:    pkg.PkgPath,
		PkgName:    pkg.Name,
		Kind:       KindType,
		Signature:  ts.Name.Name,
		Doc:        doc.Text(),
		SourceFile: resolveSourceFile(pkg.Fset, ts.Pos(), moduleRoot),
	}
	if pkg.TypesInfo != nil {
		if tn, ok := pkg.TypesInfo.Defs[ts.Name].(*types.TypeName); ok {
			sym.Signature += " " + underlyingKind(tn.Type().Underlying())
		}
	}
	return sym
}

func symbolKey(pkgPath, receiver, name string) string {
	if receiver != "" {
		return pkgPath + "." + receiver + "." + name
	}
	return pkgPath + "." + name
}

// receiverName strips pointers and type parameters from a receiver
// expression.
func receiverName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.StarExpr:
		return receiverName(t.X)
	case *ast.IndexExpr:
		return receiverName(t.X)
	case *ast.IndexListExpr:
		return receiverName(t.X)
	case *ast.Ident:
		return t.Name
	default:
		return ""
	}
}

func underlyingKind(t types.Type) string {
	switch t.(type) {
	case *types.Struct:
		return "struct"
	case *types.Interface:
		return "interface"
	default:
		return shortType(t)
	}
}

func formatSignature(fn *types.Func) string {
	sig := fn.Type().(*types.Signature)
	var b strings.Builder
	b.WriteString(fn.Name())
	b.WriteString("(")
	params := sig.Params()
	for i := 0; i < params.Len(); i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		p := params.At(i)
		if p.Name() != "" {
			b.WriteString(p.Name())
			b.WriteString(" ")
		}
		if sig.Variadic() && i == params.Len()-1 {
			b.WriteString("...")
			b.WriteString(shortType(p.Type().(*types.Slice).Elem()))
			continue
		}
		b.WriteString(shortType(p.Type()))
	}
	b.WriteString(")")
	results := sig.Results()
	if results.Len() > 0 {
		b.WriteString(" ")
		if results.Len() == 1 && results.At(0).Name() == "" {
			b.WriteString(shortType(results.At(0).Type()))
		} else {
			b.WriteString("(")
			for i := 0; i < results.Len(); i++ {
				if i > 0 {
					b.WriteString(", ")
				}
				if name := results.At(i).Name(); name != "" {
					b.WriteString(name)
					b.WriteString(" ")
				}
				b.WriteString(shortType(results.At(i).Type()))
			}
			b.WriteString(")")
		}
	}
	return b.String()
}

func shortType(t types.Type) string {
	return types.TypeString(t, func(pkg *types.Package) string {
		return pkg.Name()
	})
}

// resolveSourceFile resolves a token position to a file path relative to moduleRoot.
func resolveSourceFile(fset *token.FileSet, pos token.Pos, moduleRoot string) string {
	if fset == nil || !pos.IsValid() {
		return ""
	}
	position := fset.Position(pos)
	if !position.IsValid() || position.Filename == "" {
		return ""
	}
	rel, err := filepath.Rel(moduleRoot, position.Filename)
	if err != nil {
		return position.Filename
	}
	return rel
}
