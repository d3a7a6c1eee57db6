package main

import (
	"go/ast"
	"go/types"
	"path"
	"strings"

	"golang.org/x/tools/go/analysis"
)

// OsExitCheckAnalyzer is a custom analyzer that detects calls to os.Exit in the main function.
var OsExitCheckAnalyzer = &analysis.Analyzer{
	Name: "osexitcheck",
	Doc:  "check for os.Exit() calls",
	Run:  runOsExit,
}

// WallClockAnalyzer reports direct time.Now() calls in packages that receive
// their clock as a dependency. Referencing time.Now as a value is allowed.
var WallClockAnalyzer = &analysis.Analyzer{
	Name: "wallclock",
	Doc:  "check for time.Now() calls in storage and services packages",
	Run:  runWallClock,
}

// clockedPackages lists the last import path elements checked by WallClockAnalyzer.
var clockedPackages = map[string]bool{
	"storage":  true,
	"services": true,
}

func runOsExit(pass *analysis.Pass) (interface{}, error) {
	for _, file := range pass.Files {
		if pass.Pkg.Name() != "main" || strings.Contains(pass.Fset.Position(file.Package).Filename, ".cache") {
			return nil, nil
		}

		for _, decl := range file.Decls {
			f, ok := decl.(*ast.FuncDecl)
			if !ok {
				continue
			}

			if f.Name.Name != "main" {
				continue
			}

			ast.Inspect(f, func(node ast.Node) bool {
				if callExpr, ok := node.(*ast.CallExpr); ok {
					if selExpr, ok := callExpr.Fun.(*ast.SelectorExpr); ok {
						if ident, ok := selExpr.X.(*ast.Ident); ok && ident.Name == "os" && selExpr.Sel.Name == "Exit" {
							pass.Reportf(callExpr.Pos(), "osexitcheck os.Exit cannot be called in main function of main package")
						}
					}
				}
				return true
			})
		}
	}
	return nil, nil
}

func runWallClock(pass *analysis.Pass) (interface{}, error) {
	if !clockedPackages[path.Base(pass.Pkg.Path())] {
		return nil, nil
	}

	for _, file := range pass.Files {
		if strings.HasSuffix(pass.Fset.Position(file.Package).Filename, "_test.go") {
			continue
		}
		ast.Inspect(file, func(node ast.Node) bool {
			call, ok := node.(*ast.CallExpr)
			if !ok {
				return true
			}
			sel, ok := call.Fun.(*ast.SelectorExpr)
			if !ok {
				return true
			}
			fn, ok := pass.TypesInfo.Uses[sel.Sel].(*types.Func)
			if ok && fn.Pkg() != nil && fn.Pkg().Path() == "time" && fn.Name() == "Now" {
				pass.Reportf(call.Pos(), "wallclock time.Now() called directly, use the injected clock")
			}
			return true
		})
	}
	return nil, nil
}
