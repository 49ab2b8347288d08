package notify

import (
	"testing"
)

type capture struct{ published int }

func (c *capture) Publish(string, interface{}) { c.published++ }

func TestTopicNames(t *testing.T) {
	if got := OrdersTopic(42); got != "orders_42" {
		t.Errorf("Expected orders_42, got %s", got)
	}
	if got := ShoppingTopic(7); got != "shopping_7" {
		t.Errorf("Expected shopping_7, got %s", got)
	}
}

func TestEnvelopeShape(t *testing.T) {
	env := OrderUpdated(map[string]interface{}{"id": 1})
	if env.Type != TypeOrderUpdate {
		t.Errorf("Expected type %s, got %s", TypeOrderUpdate, env.Type)
	}
	if env.Message["action"] != ActionOrderUpdated {
		t.Errorf("Expected action %s, got %v", ActionOrderUpdated, env.Message["action"])
	}
	if _, ok := env.Message["order"]; !ok {
		t.Errorf("Expected order payload in message")
	}

	env = ShoppingListUpdated(map[string]interface{}{"id": 2})
	if env.Type != TypeShoppingListUpdate {
		t.Errorf("Expected type %s, got %s", TypeShoppingListUpdate, env.Type)
	}
	if _, ok := env.Message["item"]; !ok {
		t.Errorf("Expected item payload in message")
	}
}

func TestChooseTransport(t *testing.T) {
	local := &capture{}

	if _, ok := ChooseTransport(true, nil, local).(Nop); !ok {
		t.Errorf("Expected Nop under test execution")
	}
	if got := ChooseTransport(false, nil, local); got != local {
		t.Errorf("Expected local fallback without a broker")
	}
}
