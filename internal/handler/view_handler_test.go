package handler_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
)

func TestGetViews_ComposesMasterAndBuyLists(t *testing.T) {
	env := newTestEnv(t)
	food := env.seedCategory(t, "Food")
	env.seedCategory(t, "Household")
	milkID := env.createItem(t, "Milk", food.ID)
	env.createItem(t, "Bread", food.ID)

	// Milk is in stock
	c, rec := env.jsonRequest(http.MethodPatch, "/api/availability/1", `{"isAvailable":true,"updatedBy":"alice"}`)
	c.SetPath("/api/availability/:itemId")
	c.SetParamNames("itemId")
	c.SetParamValues(fmt.Sprint(milkID))
	if err := env.availability.SetAvailability(c); err != nil {
		t.Fatalf("SetAvailability: %v", err)
	}

	c, rec = env.jsonRequest(http.MethodGet, "/api/views", "")
	if err := env.views.GetViews(c); err != nil {
		t.Fatalf("GetViews: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var payload struct {
		Categories []struct {
			Name string `json:"name"`
		} `json:"categories"`
		MasterItems []struct {
			ID          uint   `json:"id"`
			Name        string `json:"name"`
			Category    string `json:"categoryName"`
			IsAvailable bool   `json:"isAvailable"`
		} `json:"masterItems"`
		BuyList []struct {
			ID uint `json:"id"`
		} `json:"buyList"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}

	if len(payload.Categories) != 2 || payload.Categories[0].Name != "Food" {
		t.Errorf("expected ordered categories, got %+v", payload.Categories)
	}
	if len(payload.MasterItems) != 2 || payload.MasterItems[0].Name != "Bread" {
		t.Errorf("expected master list ordered [Bread Milk], got %+v", payload.MasterItems)
	}
	if len(payload.BuyList) != 1 || payload.BuyList[0].ID == milkID {
		t.Errorf("expected only Bread on the buy list, got %+v", payload.BuyList)
	}
}

func TestGetViews_EmptyDatabase(t *testing.T) {
	env := newTestEnv(t)

	c, rec := env.jsonRequest(http.MethodGet, "/api/views", "")
	if err := env.views.GetViews(c); err != nil {
		t.Fatalf("GetViews: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var payload struct {
		Categories  []json.RawMessage `json:"categories"`
		MasterItems []json.RawMessage `json:"masterItems"`
		BuyList     []json.RawMessage `json:"buyList"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	// Empty lists serialize as [], not null
	if payload.Categories == nil || payload.MasterItems == nil || payload.BuyList == nil {
		t.Errorf("expected empty arrays, got %s", rec.Body.String())
	}
}
