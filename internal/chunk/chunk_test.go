package chunk

import (
	"fmt"
	"strings"
	"testing"

	"github.com/DeusData/javagraph/internal/entity"
)

func methodEntity(lines int) *entity.Entity {
	body := []string{"public void process(Order order) {"}
	for i := 0; i < lines-2; i++ {
		if i%5 == 4 {
			body = append(body, "")
			continue
		}
		body = append(body, fmt.Sprintf("    step%d(order);", i))
	}
	body = append(body, "}")
	return &entity.Entity{
		Kind:          entity.Method,
		Name:          "process",
		QualifiedName: "com.shop.OrderService.process",
		ClassName:     "OrderService",
		PackageName:   "com.shop",
		FilePath:      "src/OrderService.java",
		StartLine:     10,
		EndLine:       10 + len(body) - 1,
		SourceCode:    strings.Join(body, "\n"),
		Calls:         []string{"com.shop.OrderService.validate", "?.toEntity"},
		CalledBy:      []string{"com.shop.OrderController.post"},
	}
}

func TestChunkShortMethodSinglePart(t *testing.T) {
	e := methodEntity(12)
	chunks := NewChunker(60).Chunk([]*entity.Entity{e})

	if len(chunks) != 1 {
		t.Fatalf("chunks = %d, want 1", len(chunks))
	}
	c := chunks[0]
	if c.ID != "com.shop.OrderService.process#0" {
		t.Errorf("id = %q", c.ID)
	}
	if c.TotalParts != 1 || c.PartIndex != 0 {
		t.Errorf("parts = %d/%d", c.PartIndex, c.TotalParts)
	}
	if c.SourceCode != e.SourceCode {
		t.Error("single-part chunk must carry the full source")
	}
	if !strings.Contains(c.Text, "src/OrderService.java") {
		t.Error("text missing location header")
	}
	if !strings.Contains(c.Text, "com.shop.OrderService.validate") {
		t.Error("text missing call graph footer")
	}
}

func TestChunkLongMethodSplit(t *testing.T) {
	e := methodEntity(150)
	chunks := NewChunker(60).Chunk([]*entity.Entity{e})

	if len(chunks) < 2 {
		t.Fatalf("chunks = %d, want a split", len(chunks))
	}
	for i, c := range chunks {
		if c.PartIndex != i || c.TotalParts != len(chunks) {
			t.Errorf("chunk %d parts = %d/%d", i, c.PartIndex, c.TotalParts)
		}
		if want := fmt.Sprintf("com.shop.OrderService.process#%d", i); c.ID != want {
			t.Errorf("chunk %d id = %q, want %q", i, c.ID, want)
		}
		if !strings.HasPrefix(c.SourceCode, "public void process(Order order) {") {
			t.Errorf("chunk %d missing signature prefix", i)
		}
		if !strings.Contains(c.SourceCode, fmt.Sprintf("(part %d/%d)", i+1, len(chunks))) {
			t.Errorf("chunk %d missing part marker", i)
		}
		if n := len(strings.Split(c.SourceCode, "\n")); n > 62 {
			t.Errorf("chunk %d has %d lines, over budget", i, n)
		}
	}
}

func TestChunkSkipsFields(t *testing.T) {
	chunks := NewChunker(0).Chunk([]*entity.Entity{
		{Kind: entity.Field, Name: "repo", QualifiedName: "p.C.repo", ClassName: "C"},
	})
	if len(chunks) != 0 {
		t.Errorf("chunks = %d, fields must not chunk", len(chunks))
	}
}

func TestChunkClassSummary(t *testing.T) {
	class := &entity.Entity{
		Kind: entity.Class, Name: "OrderService",
		QualifiedName: "com.shop.OrderService", PackageName: "com.shop",
		Modifiers: []string{"public"}, Annotations: []string{"@Service"},
		FilePath: "src/OrderService.java", StartLine: 4, EndLine: 30,
		SourceCode: "public class OrderService { }",
	}
	members := []*entity.Entity{
		class,
		{Kind: entity.Field, Name: "orderRepo", QualifiedName: "com.shop.OrderService.orderRepo",
			ClassName: "OrderService", ReturnType: "OrderRepository", Modifiers: []string{"private"}},
		{Kind: entity.Method, Name: "create", QualifiedName: "com.shop.OrderService.create",
			ClassName: "OrderService", ReturnType: "OrderDto", Parameters: []string{"OrderRequest req"}},
		{Kind: entity.Method, Name: "other", QualifiedName: "com.other.Thing.other",
			ClassName: "Thing"},
	}
	chunks := NewChunker(0).Chunk(members)

	var summary *Chunk
	for _, c := range chunks {
		if c.QualifiedName == "com.shop.OrderService" {
			summary = c
		}
	}
	if summary == nil {
		t.Fatal("no class summary chunk")
	}
	for _, want := range []string{"@Service", "public class OrderService", "orderRepo", "create(OrderRequest req)"} {
		if !strings.Contains(summary.Text, want) {
			t.Errorf("summary missing %q:\n%s", want, summary.Text)
		}
	}
	if strings.Contains(summary.Text, "other") {
		t.Error("summary includes member of a different class")
	}
}

func TestChunkerDefaultThreshold(t *testing.T) {
	for _, v := range []int{0, -5} {
		if c := NewChunker(v); c.maxLines != DefaultMaxLines {
			t.Errorf("NewChunker(%d).maxLines = %d, want default", v, c.maxLines)
		}
	}
}
