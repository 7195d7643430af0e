// Package main - статический анализ кода дашборда.
//
// # Использование
//
//	go run ./cmd/staticlint ./...
//
// # Включенные анализаторы
//
// Стандартные анализаторы из golang.org/x/tools/go/analysis/passes:
// asmdecl, assign, atomic, bools, buildtag, cgocall, composite, copylock,
// errorsas, httpresponse, loopclosure, lostcancel, nilfunc, printf, shift,
// stdmethods, structtag, tests, unmarshal, unreachable, unusedresult.
//
// Публичные анализаторы:
//   - bodyclose: тела HTTP-ответов закрыты (агент, тесты обработчиков)
//   - errcheck: ошибки не игнорируются
//
// Собственные анализаторы:
//   - noexit: запрещает os.Exit в функции main пакета main
//   - rawhtml: запрещает template.HTML и родственные типы для неконстантных строк
package main

import (
	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/multichecker"
	"golang.org/x/tools/go/analysis/passes/asmdecl"
	"golang.org/x/tools/go/analysis/passes/assign"
	"golang.org/x/tools/go/analysis/passes/atomic"
	"golang.org/x/tools/go/analysis/passes/bools"
	"golang.org/x/tools/go/analysis/passes/buildtag"
	"golang.org/x/tools/go/analysis/passes/cgocall"
	"golang.org/x/tools/go/analysis/passes/composite"
	"golang.org/x/tools/go/analysis/passes/copylock"
	"golang.org/x/tools/go/analysis/passes/errorsas"
	"golang.org/x/tools/go/analysis/passes/httpresponse"
	"golang.org/x/tools/go/analysis/passes/loopclosure"
	"golang.org/x/tools/go/analysis/passes/lostcancel"
	"golang.org/x/tools/go/analysis/passes/nilfunc"
	"golang.org/x/tools/go/analysis/passes/printf"
	"golang.org/x/tools/go/analysis/passes/shift"
	"golang.org/x/tools/go/analysis/passes/stdmethods"
	"golang.org/x/tools/go/analysis/passes/structtag"
	"golang.org/x/tools/go/analysis/passes/tests"
	"golang.org/x/tools/go/analysis/passes/unmarshal"
	"golang.org/x/tools/go/analysis/passes/unreachable"
	"golang.org/x/tools/go/analysis/passes/unusedresult"

	"github.com/kisielk/errcheck/errcheck"
	"github.com/timakin/bodyclose/passes/bodyclose"

	"github.com/25x8/dashboard-widgets/cmd/staticlint/noexit"
	"github.com/25x8/dashboard-widgets/cmd/staticlint/rawhtml"
)

func analyzers() []*analysis.Analyzer {
	return []*analysis.Analyzer{
		asmdecl.Analyzer,
		assign.Analyzer,
		atomic.Analyzer,
		bools.Analyzer,
		buildtag.Analyzer,
		cgocall.Analyzer,
		composite.Analyzer,
		copylock.Analyzer,
		errorsas.Analyzer,
		httpresponse.Analyzer,
		loopclosure.Analyzer,
		lostcancel.Analyzer,
		nilfunc.Analyzer,
		printf.Analyzer,
		shift.Analyzer,
		stdmethods.Analyzer,
		structtag.Analyzer,
		tests.Analyzer,
		unmarshal.Analyzer,
		unreachable.Analyzer,
		unusedresult.Analyzer,

		bodyclose.Analyzer,
		errcheck.Analyzer,

		noexit.Analyzer,
		rawhtml.Analyzer,
	}
}

func main() {
	multichecker.Main(analyzers()...)
}
