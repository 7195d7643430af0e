// Package rawhtml ищет преобразования неконстантных строк в типы
// html/template, которые отключают экранирование (template.HTML и др.).
// Разметка виджетов строится только через шаблоны.
package rawhtml

import (
	"go/ast"
	"go/types"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

var Analyzer = &analysis.Analyzer{
	Name:     "rawhtml",
	Doc:      "проверка преобразований неконстантных строк в template.HTML, HTMLAttr, CSS, JS и URL",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

// unsafeTypes типы html/template, содержимое которых выводится без экранирования
var unsafeTypes = map[string]bool{
	"HTML":     true,
	"HTMLAttr": true,
	"CSS":      true,
	"JS":       true,
	"JSStr":    true,
	"URL":      true,
	"Srcset":   true,
}

func run(pass *analysis.Pass) (interface{}, error) {
	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	insp.Preorder([]ast.Node{(*ast.CallExpr)(nil)}, func(n ast.Node) {
		call := n.(*ast.CallExpr)
		if len(call.Args) != 1 {
			return
		}

		name, ok := templateType(pass.TypesInfo, call.Fun)
		if !ok {
			return
		}

		// константы проверяются автором кода, не пользователем
		if tv, ok := pass.TypesInfo.Types[call.Args[0]]; ok && tv.Value != nil {
			return
		}

		pass.Reportf(call.Pos(), "преобразование в template.%s отключает экранирование", name)
	})

	return nil, nil
}

// templateType возвращает имя типа, если выражение - небезопасный тип html/template
func templateType(info *types.Info, fun ast.Expr) (string, bool) {
	tv, ok := info.Types[fun]
	if !ok || !tv.IsType() {
		return "", false
	}
	named, ok := tv.Type.(*types.Named)
	if !ok {
		return "", false
	}
	obj := named.Obj()
	if obj.Pkg() == nil || obj.Pkg().Path() != "html/template" {
		return "", false
	}
	return obj.Name(), unsafeTypes[obj.Name()]
}
