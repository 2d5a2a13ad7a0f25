package store

import (
	"time"

	"github.com/nunukkam/admin-portal-api/internal/models"
)

// Seed populates the demo collections with the fixture data the portal
// shipped with. The data resets on every process start.
func Seed(s *Store) {
	now := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

	skills := []models.Skill{
		{ID: "skill-1", Name: "Communication", Description: "Workplace communication and presentation", CreatedAt: now},
		{ID: "skill-2", Name: "Problem Solving", Description: "Structured analytical thinking", CreatedAt: now},
		{ID: "skill-3", Name: "Aptitude", Description: "Quantitative and logical aptitude", CreatedAt: now},
		{ID: "skill-4", Name: "Java Programming", Description: "", CreatedAt: now},
	}
	for _, sk := range skills {
		_, _ = s.CreateSkill(sk)
	}

	designations := []models.Designation{
		{ID: "desig-1", Title: "Program Manager", CreatedAt: now},
		{ID: "desig-2", Title: "Senior Trainer", CreatedAt: now},
		{ID: "desig-3", Title: "Placement Officer", CreatedAt: now},
	}
	for _, d := range designations {
		_, _ = s.CreateDesignation(d)
	}

	roles := []models.Role{
		{
			ID:      "role-1",
			Title:   "Super Admin",
			AddedBy: "system",
			Permissions: models.PermissionSet{
				{Module: "courses", Actions: []string{models.ActionWildcard}},
				{Module: "colleges", Actions: []string{models.ActionWildcard}},
				{Module: "users", Actions: []string{models.ActionWildcard}},
				{Module: "roles", Actions: []string{models.ActionWildcard}},
				{Module: "reports", Actions: []string{models.ActionWildcard}},
				{Module: "notifications", Actions: []string{models.ActionWildcard}},
			},
			CreatedAt: now,
		},
		{
			ID:      "role-2",
			Title:   "Trainer",
			AddedBy: "role-1",
			Permissions: models.PermissionSet{
				{Module: "courses", Actions: []string{"read"}},
				{Module: "colleges", Actions: []string{"read"}},
			},
			CreatedAt: now,
		},
	}
	for _, r := range roles {
		_, _ = s.CreateRole(r)
	}

	users := []models.User{
		{
			ID:            "user-1",
			Email:         "priya.sharma@nunukkam.in",
			FullName:      "Priya Sharma",
			Phone:         "9840012345",
			DesignationID: "desig-1",
			RoleID:        "role-1",
			Status:        models.UserStatusActive,
			CreatedAt:     now,
		},
		{
			ID:            "user-2",
			Email:         "arun.vel@nunukkam.in",
			FullName:      "Arun Velmurugan",
			Phone:         "9840054321",
			DesignationID: "desig-2",
			RoleID:        "role-2",
			Status:        models.UserStatusActive,
			CreatedAt:     now,
		},
		{
			ID:            "user-3",
			Email:         "kavitha.r@nunukkam.in",
			FullName:      "Kavitha Raman",
			Phone:         "9840067890",
			DesignationID: "desig-2",
			RoleID:        "role-2",
			Status:        models.UserStatusDeactivated,
			CreatedAt:     now,
		},
	}
	for _, u := range users {
		_, _ = s.CreateUser(u)
	}

	chapters := []models.Chapter{
		{
			ID:     "chapter-1",
			Name:   "Foundations of Communication",
			Skills: models.StringList{"skill-1"},
			Assessments: models.AssessmentList{
				{
					ID:            "assessment-1",
					Title:         "Communication Pre-KBA",
					Kind:          models.AssessmentPreKBA,
					Duration:      30,
					Type:          "MCQ",
					Skills:        []string{"skill-1"},
					PassingCutoff: 40,
					Proficiency:   models.Proficiency{Expert: 85, Intermediate: 60, Novice: 40},
				},
				{
					ID:            "assessment-2",
					Title:         "Communication Post-KBA",
					Kind:          models.AssessmentPostKBA,
					Duration:      45,
					Type:          "MCQ",
					Skills:        []string{"skill-1"},
					PassingCutoff: 50,
					Proficiency:   models.Proficiency{Expert: 90, Intermediate: 65, Novice: 50},
				},
			},
			CreatedAt: now,
		},
		{
			ID:     "chapter-2",
			Name:   "Quantitative Aptitude Basics",
			Skills: models.StringList{"skill-3"},
			Assessments: models.AssessmentList{
				{
					ID:            "assessment-3",
					Title:         "Aptitude Pre-KBA",
					Kind:          models.AssessmentPreKBA,
					Duration:      40,
					Type:          "MCQ",
					Skills:        []string{"skill-3"},
					PassingCutoff: 40,
					Proficiency:   models.Proficiency{Expert: 85, Intermediate: 60, Novice: 40},
				},
			},
			CreatedAt: now,
		},
	}
	for _, c := range chapters {
		_, _ = s.CreateChapter(c)
	}

	courses := []models.Course{
		{
			ID:           "course-1",
			Title:        "Campus to Corporate",
			Description:  "Employability program covering communication and aptitude",
			CoreSkills:   models.StringList{"skill-1", "skill-3"},
			DurationDays: 45,
			Modules: models.ModuleList{
				{ID: "module-1", Name: "Soft Skills", Chapters: []string{"chapter-1"}},
				{ID: "module-2", Name: "Aptitude", Chapters: []string{"chapter-2"}},
			},
			Status:    models.CourseStatusPublished,
			CreatedAt: now,
		},
		{
			ID:           "course-2",
			Title:        "Java Full Stack",
			Description:  "Hands-on Java, Spring and front-end fundamentals",
			CoreSkills:   models.StringList{"skill-4", "skill-2"},
			DurationDays: 90,
			Modules:      models.ModuleList{},
			Status:       models.CourseStatusDraft,
			CreatedAt:    now,
		},
	}
	for _, c := range courses {
		_, _ = s.CreateCourse(c)
	}

	colleges := []models.College{
		{
			ID:                 "college-1",
			Name:               "Global Institute of Technology",
			University:         "Anna University",
			City:               "Chennai",
			State:              "Tamil Nadu",
			Address:            "12 GST Road, Tambaram",
			Pincode:            "600045",
			POCName:            "Dr. S. Ramesh",
			POCNumber:          "9884012345",
			ProgramCoordinator: "Arun Velmurugan",
			Students: models.StudentList{
				{
					ID:             "student-1",
					Name:           "Rahul Kumar",
					Department:     "CSE",
					Batch:          "2025-A",
					ContactNumber:  "9003012345",
					Email:          "rahul@email.com",
					CourseAssigned: "course-1",
					Trainer:        "Arun Velmurugan",
					BatchStartDate: "2025-06-09",
					BatchEndDate:   "2025-07-25",
				},
			},
			Schedules: models.ScheduleList{
				{Date: "2025-06-09", Batch: "2025-A", ChapterID: "chapter-1"},
				{Date: "2025-06-16", Batch: "2025-A", ChapterID: "chapter-2"},
			},
			AssessmentDeadlines: models.DeadlineList{
				{Title: "Communication Pre-KBA", SubmissionDate: "2025-06-13"},
			},
			CreatedAt: now,
		},
		{
			ID:         "college-2",
			Name:       "Sri Meenakshi Engineering College",
			University: "Anna University",
			City:       "Madurai",
			State:      "Tamil Nadu",
			Address:    "Ring Road, Madurai",
			Pincode:    "625001",
			POCName:    "Prof. L. Devi",
			POCNumber:  "9842098765",
			CreatedAt:  now,
		},
	}
	for _, c := range colleges {
		_, _ = s.CreateCollege(c)
	}
}
