package emit

import (
	"fmt"

	"github.com/tsoniclang/tsonic-sub006/internal/hostast"
)

// buildExchangeClass synthesizes the "_exchange" record a bidirectional
// generator uses to carry a value across each yield/resume boundary
// (spec §4.6 "Generator lowering"): the value the generator yields out,
// paired with the value the caller sends back in on the next call.
func buildExchangeClass(name, yieldType, sentType string) *hostast.TypeDecl {
	return &hostast.TypeDecl{
		Modifiers: []string{"public", "sealed"},
		Kind:      "class",
		Name:      name,
		Members: []hostast.Member{
			&hostast.PropertyMember{Modifiers: []string{"public"}, Type: yieldType, Name: "Yielded", AutoGet: true, AutoSet: true},
			&hostast.PropertyMember{Modifiers: []string{"public"}, Type: sentType, Name: "Sent", AutoGet: true, AutoSet: true},
		},
	}
}

// buildGeneratorWrapperClass synthesizes the "_Generator" pull-based
// wrapper around a C# IEnumerator<_exchange>, exposing Current/Send so
// callers can drive a bidirectional generator without touching the raw
// enumerator protocol.
func buildGeneratorWrapperClass(name, exchangeType, yieldType, sentType string) *hostast.TypeDecl {
	ctor := &hostast.ConstructorMember{
		Modifiers:  []string{"public"},
		Name:       name,
		Parameters: []hostast.Param{{Type: fmt.Sprintf("IEnumerable<%s>", exchangeType), Name: "source"}},
		Body: []hostast.Stmt{
			&hostast.ExprStmt{Expr: "_source = source.GetEnumerator()"},
		},
	}
	sendMethod := &hostast.MethodMember{
		Modifiers:  []string{"public"},
		ReturnType: "bool",
		Name:       "Send",
		Parameters: []hostast.Param{{Type: sentType, Name: "value"}},
		Body: []hostast.Stmt{
			&hostast.ExprStmt{Expr: "_pending = value"},
			&hostast.IfStmt{
				Cond: "_source.MoveNext()",
				Then: []hostast.Stmt{
					&hostast.ExprStmt{Expr: "Current = _source.Current.Yielded"},
					&hostast.ReturnStmt{Value: "true"},
				},
				Else: []hostast.Stmt{&hostast.ReturnStmt{Value: "false"}},
			},
		},
	}
	return &hostast.TypeDecl{
		Modifiers: []string{"public", "sealed"},
		Kind:      "class",
		Name:      name,
		Members: []hostast.Member{
			&hostast.FieldMember{Modifiers: []string{"private", "readonly"}, Type: fmt.Sprintf("IEnumerator<%s>", exchangeType), Name: "_source"},
			&hostast.FieldMember{Modifiers: []string{"private"}, Type: sentType, Name: "_pending"},
			&hostast.PropertyMember{Modifiers: []string{"public"}, Type: yieldType, Name: "Current", AutoGet: true, AutoSet: true},
			ctor,
			sendMethod,
		},
	}
}

// BidirectionalGeneratorSupport returns the pair of synthesized classes a
// bidirectional generator (NextType set, spec §3.1 FuncDecl.NextType)
// needs, named from the owning function so multiple generators in one
// module don't collide.
func BidirectionalGeneratorSupport(funcName, yieldType, sentType string) (exchange, wrapper *hostast.TypeDecl) {
	exchangeName := funcName + "_exchange"
	wrapperName := funcName + "_Generator"
	exchange = buildExchangeClass(exchangeName, yieldType, sentType)
	wrapper = buildGeneratorWrapperClass(wrapperName, exchangeName, yieldType, sentType)
	return exchange, wrapper
}
