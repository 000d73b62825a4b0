package repository

import (
	"fmt"
	"sync"
	"testing"
)

type report struct {
	ID    string
	Title string
}

func newReportRepository() *InMemory[report] {
	return NewInMemory(
		func(r report) string { return r.ID },
		func(r report, id string) report {
			r.ID = id
			return r
		},
	)
}

func TestSaveAssignsID(t *testing.T) {
	repo := newReportRepository()
	saved := repo.Save(report{Title: "first"})
	if saved.ID == "" {
		t.Fatal("Expect generated ID, but got empty")
	}
	found, ok := repo.FindByID(saved.ID)
	if !ok {
		t.Fatalf("Expect entity under %s, but got none", saved.ID)
	}
	if found.Title != "first" {
		t.Errorf("Expect title first, but got %s", found.Title)
	}
}

func TestSaveKeepsExistingID(t *testing.T) {
	repo := newReportRepository()
	saved := repo.Save(report{ID: "fixed", Title: "v1"})
	if saved.ID != "fixed" {
		t.Fatalf("Expect ID fixed, but got %s", saved.ID)
	}
	repo.Save(report{ID: "fixed", Title: "v2"})
	if n := repo.Count(); n != 1 {
		t.Fatalf("Expect count 1 after overwrite, but got %d", n)
	}
	found, _ := repo.FindByID("fixed")
	if found.Title != "v2" {
		t.Errorf("Expect overwritten title v2, but got %s", found.Title)
	}
}

func TestSaveAllPreservesOrder(t *testing.T) {
	repo := newReportRepository()
	saved := repo.SaveAll([]report{{Title: "a"}, {Title: "b"}, {Title: "c"}})
	if len(saved) != 3 {
		t.Fatalf("Expect 3 saved, but got %d", len(saved))
	}
	for idx, title := range []string{"a", "b", "c"} {
		if saved[idx].Title != title {
			t.Errorf("Expect title %s at %d, but got %s", title, idx, saved[idx].Title)
		}
		if saved[idx].ID == "" {
			t.Errorf("Expect generated ID at %d", idx)
		}
	}
	seen := make(map[string]struct{}, len(saved))
	for _, v := range saved {
		if _, dup := seen[v.ID]; dup {
			t.Errorf("duplicate generated ID %s", v.ID)
		}
		seen[v.ID] = struct{}{}
	}
}

func TestFindAllByIDSkipsMissing(t *testing.T) {
	repo := newReportRepository()
	a := repo.Save(report{Title: "a"})
	b := repo.Save(report{Title: "b"})
	found := repo.FindAllByID([]string{a.ID, "missing", b.ID})
	if len(found) != 2 {
		t.Fatalf("Expect 2 results, but got %d", len(found))
	}
	if found[0].ID != a.ID || found[1].ID != b.ID {
		t.Errorf("Expect results in request order, but got %v", found)
	}
}

func TestDelete(t *testing.T) {
	repo := newReportRepository()
	saved := repo.Save(report{Title: "victim"})
	repo.DeleteByID(saved.ID)
	if _, ok := repo.FindByID(saved.ID); ok {
		t.Error("Expect entity gone after DeleteByID")
	}
	if repo.ExistsByID(saved.ID) {
		t.Error("Expect ExistsByID false after delete")
	}

	saved = repo.Save(report{Title: "victim2"})
	repo.Delete(saved)
	if repo.ExistsByID(saved.ID) {
		t.Error("Expect entity gone after Delete")
	}

	// deleting an entity without an identifier is a no-op
	repo.Save(report{Title: "stays"})
	repo.Delete(report{Title: "stays"})
	if n := repo.Count(); n != 1 {
		t.Errorf("Expect count 1, but got %d", n)
	}
}

func TestDeleteAll(t *testing.T) {
	repo := newReportRepository()
	saved := repo.SaveAll([]report{{Title: "a"}, {Title: "b"}, {Title: "c"}})
	repo.DeleteAllByID([]string{saved[0].ID})
	if n := repo.Count(); n != 2 {
		t.Fatalf("Expect count 2, but got %d", n)
	}
	repo.DeleteAllOf(saved[1:])
	if n := repo.Count(); n != 0 {
		t.Fatalf("Expect count 0, but got %d", n)
	}
	repo.SaveAll([]report{{Title: "x"}, {Title: "y"}})
	repo.DeleteAll()
	if n := repo.Count(); n != 0 {
		t.Errorf("Expect count 0 after DeleteAll, but got %d", n)
	}
	if all := repo.FindAll(); len(all) != 0 {
		t.Errorf("Expect empty FindAll, but got %d", len(all))
	}
}

func TestConcurrentSave(t *testing.T) {
	repo := newReportRepository()
	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			repo.Save(report{Title: fmt.Sprintf("r%d", i)})
		}(i)
	}
	wg.Wait()
	if n := repo.Count(); n != 50 {
		t.Errorf("Expect count 50, but got %d", n)
	}
}
