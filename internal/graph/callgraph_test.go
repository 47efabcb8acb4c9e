package graph

import (
	"reflect"
	"testing"

	"github.com/DeusData/javagraph/internal/entity"
)

func TestBuildSkipsUnresolved(t *testing.T) {
	g := Build([]*entity.Entity{
		{Kind: entity.Method, QualifiedName: "a.Svc.run",
			Calls: []string{"a.Svc.step", "?.toEntity", "b.Repo.save"}},
		{Kind: entity.Class, QualifiedName: "a.Svc",
			Calls: []string{"never.counted"}},
	})

	want := []string{"a.Svc.step", "b.Repo.save"}
	if got := g.Callees("a.Svc.run"); !reflect.DeepEqual(got, want) {
		t.Errorf("callees = %v, want %v", got, want)
	}
	if g.EdgeCount() != 2 {
		t.Errorf("edge count = %d, want 2", g.EdgeCount())
	}
	if got := g.Callees("a.Svc"); got != nil {
		t.Errorf("class contributed edges: %v", got)
	}
}

func TestGraphBidirectional(t *testing.T) {
	g := NewGraph()
	g.AddEdge("a.A.x", "a.B.y")
	g.AddEdge("a.C.z", "a.B.y")
	g.AddEdge("a.A.x", "a.B.y") // duplicate, set semantics

	if got := g.Callers("a.B.y"); !reflect.DeepEqual(got, []string{"a.A.x", "a.C.z"}) {
		t.Errorf("callers = %v", got)
	}
	if got := g.Callees("a.A.x"); !reflect.DeepEqual(got, []string{"a.B.y"}) {
		t.Errorf("callees = %v", got)
	}
	if g.EdgeCount() != 2 {
		t.Errorf("edge count = %d, want 2", g.EdgeCount())
	}
}

func TestChain(t *testing.T) {
	// controller -> service -> repo
	//                       -> mapper
	g := NewGraph()
	g.AddEdge("Controller.get", "Service.find")
	g.AddEdge("Service.find", "Repo.load")
	g.AddEdge("Service.find", "Mapper.toDto")

	forward := g.Chain("Controller.get", 2, false)
	want := []string{"Service.find", "Mapper.toDto", "Repo.load"}
	if !reflect.DeepEqual(forward, want) {
		t.Errorf("forward chain = %v, want %v", forward, want)
	}

	shallow := g.Chain("Controller.get", 1, false)
	if !reflect.DeepEqual(shallow, []string{"Service.find"}) {
		t.Errorf("depth-1 chain = %v", shallow)
	}

	backward := g.Chain("Repo.load", 2, true)
	if !reflect.DeepEqual(backward, []string{"Service.find", "Controller.get"}) {
		t.Errorf("backward chain = %v", backward)
	}
}

func TestChainCycleTerminates(t *testing.T) {
	g := NewGraph()
	g.AddEdge("A.a", "B.b")
	g.AddEdge("B.b", "A.a")

	got := g.Chain("A.a", 10, false)
	if !reflect.DeepEqual(got, []string{"B.b"}) {
		t.Errorf("cyclic chain = %v, want [B.b]", got)
	}
}
