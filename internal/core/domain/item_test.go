package domain

import "testing"

func TestHasPermission(t *testing.T) {
	tests := []struct {
		name     string
		have     []string
		required []string
		want     bool
	}{
		{"single match", []string{PermissionUser}, []string{PermissionUser}, true},
		{"one of many", []string{PermissionUser, PermissionItemDelete}, []string{PermissionAdmin, PermissionItemDelete}, true},
		{"no overlap", []string{PermissionUser}, []string{PermissionAdmin, PermissionPermissionUpdate}, false},
		{"empty have", nil, []string{PermissionUser}, false},
		{"empty required", []string{PermissionUser}, nil, false},
	}

	for _, tt := range tests {
		u := &User{Permissions: tt.have}
		if got := u.HasPermission(tt.required...); got != tt.want {
			t.Fatalf("%s: HasPermission(%v) = %v, want %v", tt.name, tt.required, got, tt.want)
		}
	}
}

func TestCanDeleteItem(t *testing.T) {
	item := &Item{ID: "item_1", UserID: "user_a"}

	ownerElevated := &User{ID: "user_a", Permissions: []string{PermissionUser, PermissionItemDelete}}
	if !CanDeleteItem(ownerElevated, item) {
		t.Fatalf("owner with ITEMDELETE should be allowed")
	}

	ownerAdmin := &User{ID: "user_a", Permissions: []string{PermissionAdmin}}
	if !CanDeleteItem(ownerAdmin, item) {
		t.Fatalf("owner with ADMIN should be allowed")
	}

	ownerPlain := &User{ID: "user_a", Permissions: []string{PermissionUser}}
	if CanDeleteItem(ownerPlain, item) {
		t.Fatalf("owner without elevated permission must be denied")
	}

	// Admin who does not own the item is denied: both conditions are required.
	adminNonOwner := &User{ID: "user_b", Permissions: []string{PermissionAdmin}}
	if CanDeleteItem(adminNonOwner, item) {
		t.Fatalf("non-owner admin must be denied")
	}

	if CanDeleteItem(nil, item) || CanDeleteItem(ownerAdmin, nil) {
		t.Fatalf("nil actor or item must be denied")
	}
}

func TestTotal(t *testing.T) {
	lines := []CartLine{
		{CartItem: CartItem{Quantity: 2}, Item: Item{PriceCents: 1500}},
		{CartItem: CartItem{Quantity: 1}, Item: Item{PriceCents: 4999}},
	}
	if got := Total(lines); got != 7999 {
		t.Fatalf("Total = %d, want 7999", got)
	}
	if got := Total(nil); got != 0 {
		t.Fatalf("Total(nil) = %d, want 0", got)
	}
}
