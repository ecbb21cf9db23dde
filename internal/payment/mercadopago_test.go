package payment

import "testing"

func TestNewMercadoPagoGateway(t *testing.T) {
	gw, err := NewMercadoPagoGateway("TEST-1234567890")
	if err != nil {
		t.Fatalf("NewMercadoPagoGateway() error = %v", err)
	}
	if gw == nil {
		t.Fatal("NewMercadoPagoGateway() returned nil gateway")
	}

	var _ Gateway = gw
}
