package agent

import (
	"context"
	"testing"

	openai "github.com/sashabaranov/go-openai"
)

func TestToolRegistryPreservesRegistrationOrder(t *testing.T) {
	registry := NewToolRegistry()
	registry.Register(GetWeatherFuncDef, handleGetWeather)
	registry.Register(SumNumbersFuncDef, handleSumNumbers)
	registry.Register(ConvertTemperatureFuncDef, handleConvertTemperature)

	if registry.Len() != 3 {
		t.Fatalf("expected 3 tools, got %d", registry.Len())
	}

	expected := []string{GetWeather, SumNumbers, ConvertTemperature}

	assistantTools := registry.AssistantTools()
	if len(assistantTools) != len(expected) {
		t.Fatalf("expected %d assistant tools, got %d", len(expected), len(assistantTools))
	}
	for i, name := range expected {
		if assistantTools[i].Function.Name != name {
			t.Errorf("assistant tool %d: expected %s, got %s", i, name, assistantTools[i].Function.Name)
		}
		if assistantTools[i].Type != openai.AssistantToolTypeFunction {
			t.Errorf("assistant tool %d: unexpected type %s", i, assistantTools[i].Type)
		}
	}

	chatTools := registry.ChatTools()
	for i, name := range expected {
		if chatTools[i].Function.Name != name {
			t.Errorf("chat tool %d: expected %s, got %s", i, name, chatTools[i].Function.Name)
		}
	}
}

func TestToolRegistryReRegisterReplacesHandler(t *testing.T) {
	registry := NewToolRegistry()
	registry.Register(SumNumbersFuncDef, func(ctx context.Context, args string) (string, error) {
		return "first", nil
	})
	registry.Register(SumNumbersFuncDef, func(ctx context.Context, args string) (string, error) {
		return "second", nil
	})

	if registry.Len() != 1 {
		t.Fatalf("expected 1 tool, got %d", registry.Len())
	}

	tool, ok := registry.Lookup(SumNumbers)
	if !ok {
		t.Fatal("expected tool to be registered")
	}
	output, err := tool.Handler(context.Background(), "{}")
	if err != nil {
		t.Fatal(err)
	}
	if output != "second" {
		t.Errorf("expected replaced handler, got %q", output)
	}
}

func TestToolRegistryLookupMissing(t *testing.T) {
	registry := NewToolRegistry()
	if _, ok := registry.Lookup("nope"); ok {
		t.Error("expected lookup miss")
	}
}

func TestDispatchToolCallsKeepsServiceOrder(t *testing.T) {
	registry := NewToolRegistry()
	registry.Register(ConvertTemperatureFuncDef, handleConvertTemperature)
	registry.Register(SumNumbersFuncDef, handleSumNumbers)

	outputs := dispatchToolCalls(context.Background(), registry, []openai.ToolCall{
		functionCall("call_1", SumNumbers, `{"a": 45, "b": 55}`),
		functionCall("call_2", ConvertTemperature, `{"celsius": 25}`),
	})

	if len(outputs) != 2 {
		t.Fatalf("expected 2 outputs, got %d", len(outputs))
	}
	if outputs[0].ToolCallID != "call_1" || outputs[0].Output != "100" {
		t.Errorf("unexpected first output: %+v", outputs[0])
	}
	if outputs[1].ToolCallID != "call_2" || outputs[1].Output != "77.0 degrees Fahrenheit" {
		t.Errorf("unexpected second output: %+v", outputs[1])
	}
}

func TestDispatchToolCallsSkipsBadArguments(t *testing.T) {
	registry := NewToolRegistry()
	registry.Register(SumNumbersFuncDef, handleSumNumbers)

	outputs := dispatchToolCalls(context.Background(), registry, []openai.ToolCall{
		functionCall("call_1", SumNumbers, `not json`),
		functionCall("call_2", SumNumbers, `{"a": 1, "b": 2}`),
	})

	if len(outputs) != 1 {
		t.Fatalf("expected 1 output, got %d", len(outputs))
	}
	if outputs[0].ToolCallID != "call_2" {
		t.Errorf("expected output for call_2, got %s", outputs[0].ToolCallID)
	}
}
