package emit

import (
	"testing"

	"github.com/tsoniclang/tsonic-sub006/internal/hostast"
)

func TestBidirectionalGeneratorSupportNamesClasses(t *testing.T) {
	exchange, wrapper := BidirectionalGeneratorSupport("counter", "int", "string")
	if exchange.Name != "counter_exchange" {
		t.Errorf("expected counter_exchange, got %q", exchange.Name)
	}
	if wrapper.Name != "counter_Generator" {
		t.Errorf("expected counter_Generator, got %q", wrapper.Name)
	}
}

func TestExchangeClassHasYieldedAndSentProperties(t *testing.T) {
	exchange, _ := BidirectionalGeneratorSupport("counter", "int", "string")
	names := map[string]string{}
	for _, m := range exchange.Members {
		if p, ok := m.(*hostast.PropertyMember); ok {
			names[p.Name] = p.Type
		}
	}
	if names["Yielded"] != "int" {
		t.Errorf("expected Yielded:int, got %v", names)
	}
	if names["Sent"] != "string" {
		t.Errorf("expected Sent:string, got %v", names)
	}
}

func TestGeneratorWrapperClassHasSendMethod(t *testing.T) {
	_, wrapper := BidirectionalGeneratorSupport("counter", "int", "string")
	found := false
	for _, m := range wrapper.Members {
		if meth, ok := m.(*hostast.MethodMember); ok && meth.Name == "Send" {
			found = true
			if meth.ReturnType != "bool" {
				t.Errorf("expected Send to return bool, got %q", meth.ReturnType)
			}
			if len(meth.Parameters) != 1 || meth.Parameters[0].Type != "string" {
				t.Errorf("expected Send(string value), got %+v", meth.Parameters)
			}
		}
	}
	if !found {
		t.Fatal("expected a Send method on the generator wrapper class")
	}
}

func TestGeneratorWrapperClassHasCurrentPropertyAndConstructor(t *testing.T) {
	_, wrapper := BidirectionalGeneratorSupport("counter", "int", "string")
	var hasCurrent, hasCtor bool
	for _, m := range wrapper.Members {
		switch v := m.(type) {
		case *hostast.PropertyMember:
			if v.Name == "Current" && v.Type == "int" {
				hasCurrent = true
			}
		case *hostast.ConstructorMember:
			if v.Name == "counter_Generator" {
				hasCtor = true
			}
		}
	}
	if !hasCurrent {
		t.Error("expected a Current:int property")
	}
	if !hasCtor {
		t.Error("expected a constructor named after the wrapper class")
	}
}
