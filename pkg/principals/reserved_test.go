package principals

import "testing"

func TestReservedResolver(t *testing.T) {
	source := NewMemorySource()
	source.AddPrincipal(&Principal{Name: "frodo", Kind: KindPlayer, Group: "admin"})

	resolver := NewReservedResolver(source)

	console, err := resolver.ResolvePrincipal(ConsoleSender)
	if err != nil {
		t.Fatalf("console resolution failed: %v", err)
	}
	if console.Kind != KindConsole {
		t.Errorf("expected KindConsole, got %v", console.Kind)
	}

	server, err := resolver.ResolvePrincipal(ServerSender)
	if err != nil {
		t.Fatalf("server resolution failed: %v", err)
	}
	if server.Kind != KindServer {
		t.Errorf("expected KindServer, got %v", server.Kind)
	}

	player, err := resolver.ResolvePrincipal("frodo")
	if err != nil {
		t.Fatalf("player resolution failed: %v", err)
	}
	if player.Kind != KindPlayer || player.Group != "admin" {
		t.Errorf("unexpected player principal: %+v", player)
	}

	if _, err := resolver.ResolvePrincipal("nobody"); err != ErrPrincipalNotFound {
		t.Errorf("expected ErrPrincipalNotFound, got %v", err)
	}
}

func TestReservedResolverWithoutDelegate(t *testing.T) {
	resolver := NewReservedResolver(nil)

	if _, err := resolver.ResolvePrincipal(ConsoleSender); err != nil {
		t.Fatalf("console resolution failed: %v", err)
	}
	if _, err := resolver.ResolvePrincipal("frodo"); err != ErrPrincipalNotFound {
		t.Errorf("expected ErrPrincipalNotFound, got %v", err)
	}
}
