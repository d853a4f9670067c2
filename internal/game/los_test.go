package game

import (
	"math"
	"testing"
)

func wall(x, y, w, h float64) CoverZone { return NewCoverZone(CoverWall, R(x, y, w, h)) }

func TestLOS_ClearLine(t *testing.T) {
	if !LineClear(V(0, 0), V(100, 100), nil) {
		t.Fatal("expected clear line with no cover")
	}
}

func TestLOS_BlockedByWall(t *testing.T) {
	covers := []CoverZone{wall(40, 0, 20, 200)}
	if LineClear(V(0, 100), V(200, 100), covers) {
		t.Fatal("expected line blocked by wall")
	}
}

func TestLOS_WallBeyondEndpoint_NotBlocked(t *testing.T) {
	covers := []CoverZone{wall(300, 0, 64, 64)}
	if !LineClear(V(0, 32), V(200, 32), covers) {
		t.Fatal("wall beyond endpoint should not block")
	}
}

func TestLOS_PlatformDoesNotBlock(t *testing.T) {
	covers := []CoverZone{NewCoverZone(CoverPlatform, R(40, 0, 20, 200))}
	if !LineClear(V(0, 100), V(200, 100), covers) {
		t.Fatal("platform should not block projectiles")
	}
}

func TestLOS_VerticalRay_Blocked(t *testing.T) {
	covers := []CoverZone{wall(0, 40, 200, 20)}
	if LineClear(V(100, 0), V(100, 200), covers) {
		t.Fatal("expected vertical ray blocked by horizontal wall")
	}
}

func TestLOS_DiagonalRay_Blocked(t *testing.T) {
	covers := []CoverZone{wall(80, 80, 40, 40)}
	if LineClear(V(0, 0), V(200, 200), covers) {
		t.Fatal("diagonal ray should be blocked")
	}
}

func TestLOS_ZeroLength(t *testing.T) {
	covers := []CoverZone{wall(0, 0, 100, 100)}
	// Same start and end: should not panic.
	_ = LineClear(V(50, 50), V(50, 50), covers)
}

func TestSegmentRectHitT_EntryParameter(t *testing.T) {
	r := R(50, -10, 10, 20)
	got, ok := segmentRectHitT(V(0, 0), V(100, 0), r)
	if !ok {
		t.Fatal("expected a hit")
	}
	if math.Abs(got-0.5) > 1e-9 {
		t.Fatalf("expected entry at t=0.5, got %.4f", got)
	}
}

func TestSegmentRectHitT_StartInside(t *testing.T) {
	got, ok := segmentRectHitT(V(10, 10), V(20, 20), R(0, 0, 100, 100))
	if !ok || got != 0 {
		t.Fatalf("expected hit at t=0 for a segment starting inside, got %.4f ok=%v", got, ok)
	}
}

func TestSegmentRectHitT_Miss(t *testing.T) {
	if _, ok := segmentRectHitT(V(0, 0), V(100, 0), R(50, 10, 10, 10)); ok {
		t.Fatal("segment below the rect should miss")
	}
}

func TestCoverGeometry_FirstProjectileHitPicksNearest(t *testing.T) {
	g := CoverGeometry{wall(80, -10, 10, 20), wall(30, -10, 10, 20)}
	got, ok := g.FirstProjectileHit(V(0, 0), V(100, 0))
	if !ok {
		t.Fatal("expected a cover hit")
	}
	if math.Abs(got-0.3) > 1e-9 {
		t.Fatalf("expected nearest wall at t=0.3, got %.4f", got)
	}
}

func TestCoverGeometry_NearestProtection(t *testing.T) {
	g := CoverGeometry{
		NewCoverZone(CoverBunker, R(100, 0, 40, 60)),
		NewCoverZone(CoverBunker, R(400, 0, 40, 45)),
	}
	if h := g.NearestProtection(180, 120); h != 60 {
		t.Fatalf("expected protection 60 from the near bunker, got %.0f", h)
	}
	if h := g.NearestProtection(900, 120); h != 0 {
		t.Fatalf("expected no protection out of reach, got %.0f", h)
	}
}

func TestParseCoverKind(t *testing.T) {
	for k := CoverWall; k <= CoverScrub; k++ {
		got, err := ParseCoverKind(k.String())
		if err != nil || got != k {
			t.Fatalf("expected %s to round-trip, got %s err=%v", k, got, err)
		}
	}
	if _, err := ParseCoverKind("moat"); err == nil {
		t.Fatal("expected error for unknown cover kind")
	}
}

func TestVec2_NormalizeDegenerate(t *testing.T) {
	d, ok := V(1e-6, 0).Normalize(V(1, 0))
	if ok {
		t.Fatal("expected degenerate vector to be reported")
	}
	if d != V(1, 0) {
		t.Fatalf("expected fallback (1,0), got %+v", d)
	}
	d, ok = V(3, 4).Normalize(V(1, 0))
	if !ok || math.Abs(d.Len()-1) > 1e-9 {
		t.Fatalf("expected unit vector, got %+v", d)
	}
}
