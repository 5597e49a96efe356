package services

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/pathways-backend/internal/platform/apierr"
	"github.com/yungbote/pathways-backend/internal/types"
)

func newPathwayService(t *testing.T, courseRepo *fakeCourseRepo, progressRepo *fakeProgressRepo) PathwayService {
	t.Helper()
	log := testLogger(t)
	prereqs := NewPrerequisiteService(nil, log, courseRepo, progressRepo)
	return NewPathwayService(nil, log, courseRepo, progressRepo, prereqs)
}

func TestGetPathwayUnknownName(t *testing.T) {
	ctx := context.Background()
	svc := newPathwayService(t, newFakeCourseRepo(), newFakeProgressRepo())

	_, err := svc.GetPathway(ctx, nil, "no-such-pathway", uuid.Nil)
	if err == nil {
		t.Fatalf("expected error for unknown pathway")
	}
	if !apierr.IsNotFound(err) {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestGetPathwayOrdersByStage(t *testing.T) {
	ctx := context.Background()
	spark := pathwayCourse("Spark", "data-engineering", 3, 3)
	intro := pathwayCourse("Intro to SQL", "data-engineering", 1, 3)
	modeling := pathwayCourse("Data Modeling", "data-engineering", 2, 3)
	svc := newPathwayService(t, newFakeCourseRepo(spark, intro, modeling), newFakeProgressRepo())

	view, err := svc.GetPathway(ctx, nil, "data-engineering", uuid.Nil)
	if err != nil {
		t.Fatalf("GetPathway: %v", err)
	}
	if view.Name != "data-engineering" || view.TotalStages != 3 {
		t.Fatalf("unexpected view header: name=%q total_stages=%d", view.Name, view.TotalStages)
	}
	if len(view.Courses) != 3 {
		t.Fatalf("expected 3 courses, got %d", len(view.Courses))
	}
	for i, want := range []string{"Intro to SQL", "Data Modeling", "Spark"} {
		if view.Courses[i].Title != want {
			t.Fatalf("course %d = %q, want %q", i, view.Courses[i].Title, want)
		}
	}
}

func TestGetPathwaySkipsPartialMetadata(t *testing.T) {
	ctx := context.Background()
	intro := pathwayCourse("Intro to SQL", "data-engineering", 1, 3)
	// Stage present but total stages missing: not part of the pathway.
	stray := &types.Course{
		ID:           uuid.New(),
		Title:        "Stray",
		PathwayName:  "data-engineering",
		PathwayStage: 2,
	}
	svc := newPathwayService(t, newFakeCourseRepo(intro, stray), newFakeProgressRepo())

	view, err := svc.GetPathway(ctx, nil, "data-engineering", uuid.Nil)
	if err != nil {
		t.Fatalf("GetPathway: %v", err)
	}
	if len(view.Courses) != 1 || view.Courses[0].Title != "Intro to SQL" {
		t.Fatalf("partial-metadata course leaked into pathway: %+v", view.Courses)
	}
}

func TestGetPathwayAnonymousLocksGatedCourses(t *testing.T) {
	ctx := context.Background()
	intro := pathwayCourse("Intro to SQL", "data-engineering", 1, 2)
	modeling := pathwayCourse("Data Modeling", "data-engineering", 2, 2,
		prereqEdge(intro.ID, 70, 0))
	svc := newPathwayService(t, newFakeCourseRepo(intro, modeling), newFakeProgressRepo())

	view, err := svc.GetPathway(ctx, nil, "data-engineering", uuid.Nil)
	if err != nil {
		t.Fatalf("GetPathway: %v", err)
	}
	if view.Courses[0].IsLocked {
		t.Fatalf("ungated stage 1 must be unlocked for anonymous callers")
	}
	if !view.Courses[1].IsLocked || view.Courses[1].PrerequisitesMet {
		t.Fatalf("gated stage 2 must be locked for anonymous callers")
	}
	if view.Courses[0].UserProgress != nil || view.Courses[1].UserProgress != nil {
		t.Fatalf("anonymous view must carry no progress rows")
	}
	if view.Stats.LockedCourses != 1 || view.Stats.CompletedCourses != 0 {
		t.Fatalf("unexpected stats: %+v", view.Stats)
	}
}

func TestGetPathwayLockFlipsWithScore(t *testing.T) {
	ctx := context.Background()
	studentID := uuid.New()
	intro := pathwayCourse("Intro to SQL", "data-engineering", 1, 2)
	modeling := pathwayCourse("Data Modeling", "data-engineering", 2, 2,
		prereqEdge(intro.ID, 70, 0))
	courseRepo := newFakeCourseRepo(intro, modeling)

	tests := []struct {
		name       string
		progress   *types.CourseProgress
		wantLocked bool
	}{
		{"no progress", nil, true},
		{"in progress at full percentage", progressRow(studentID, intro.ID, types.ProgressStatusInProgress, 100, 40), true},
		{"completed below minimum", progressRow(studentID, intro.ID, types.ProgressStatusCompleted, 60, 40), true},
		{"completed at minimum", progressRow(studentID, intro.ID, types.ProgressStatusCompleted, 70, 50), false},
		{"completed above minimum", progressRow(studentID, intro.ID, types.ProgressStatusCompleted, 95, 80), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			progressRepo := newFakeProgressRepo()
			if tt.progress != nil {
				progressRepo.rows[progressKey{studentID, intro.ID}] = tt.progress
			}
			svc := newPathwayService(t, courseRepo, progressRepo)

			view, err := svc.GetPathway(ctx, nil, "data-engineering", studentID)
			if err != nil {
				t.Fatalf("GetPathway: %v", err)
			}
			stage2 := view.Courses[1]
			if stage2.IsLocked != tt.wantLocked {
				t.Fatalf("stage 2 locked = %v, want %v", stage2.IsLocked, tt.wantLocked)
			}
			if stage2.PrerequisitesMet == stage2.IsLocked {
				t.Fatalf("prerequisites_met must be the negation of is_locked")
			}
		})
	}
}

func TestGetPathwayCrossPathwayPrerequisite(t *testing.T) {
	ctx := context.Background()
	studentID := uuid.New()
	python := pathwayCourse("Python Basics", "programming", 1, 1)
	intro := pathwayCourse("Intro to SQL", "data-engineering", 1, 2,
		prereqEdge(python.ID, 70, 0))
	modeling := pathwayCourse("Data Modeling", "data-engineering", 2, 2,
		prereqEdge(intro.ID, 70, 0))
	progress := newFakeProgressRepo(
		progressRow(studentID, python.ID, types.ProgressStatusCompleted, 50, 20),
	)
	svc := newPathwayService(t, newFakeCourseRepo(python, intro, modeling), progress)

	view, err := svc.GetPathway(ctx, nil, "data-engineering", studentID)
	if err != nil {
		t.Fatalf("GetPathway: %v", err)
	}
	if len(view.Courses) != 2 {
		t.Fatalf("cross-pathway prerequisite must not join the target pathway, got %d courses", len(view.Courses))
	}
	stage1 := view.Courses[0]
	if !stage1.IsLocked {
		t.Fatalf("stage 1 must be locked by the out-of-pathway prerequisite")
	}
}

func TestListPathways(t *testing.T) {
	ctx := context.Background()
	svc := newPathwayService(t, newFakeCourseRepo(
		pathwayCourse("Intro to SQL", "data-engineering", 1, 3),
		pathwayCourse("Data Modeling", "data-engineering", 2, 3),
		pathwayCourse("Python Basics", "programming", 1, 1),
		&types.Course{ID: uuid.New(), Title: "Orphan"},
	), newFakeProgressRepo())

	summaries, err := svc.ListPathways(ctx, nil)
	if err != nil {
		t.Fatalf("ListPathways: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected 2 pathways, got %d", len(summaries))
	}
	if summaries[0].Name != "data-engineering" || summaries[0].CourseCount != 2 || summaries[0].TotalStages != 3 {
		t.Fatalf("unexpected first summary: %+v", summaries[0])
	}
	if summaries[1].Name != "programming" || summaries[1].CourseCount != 1 {
		t.Fatalf("unexpected second summary: %+v", summaries[1])
	}
}
