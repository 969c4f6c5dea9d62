package engine

import "fmt"

// ── Test Data ─────────────────────────────────────────────────────────────────

func surveyRow(gender, level, status, platform, impact string, usage, addicted, mental, sleep, conflicts float64) Row {
	return Row{
		Gender:             gender,
		AcademicLevel:      level,
		RelationshipStatus: status,
		Platform:           platform,
		AcademicImpact:     impact,
		DailyUsageHours:    usage,
		AddictedScore:      addicted,
		MentalHealthScore:  mental,
		SleepHours:         sleep,
		Conflicts:          conflicts,
	}
}

// sampleRows is a small survey with hand-checked aggregates:
//
//	mean addiction 6.5, mean usage 4.0, mean mental health 6.0
//	platforms: Instagram 2, TikTok 2, Facebook 1, YouTube 1
func sampleRows() []Row {
	return []Row{
		surveyRow("Female", "Undergraduate", "Single", "Instagram", "Yes", 5.0, 8, 5, 6.0, 3),
		surveyRow("Male", "Graduate", "In Relationship", "TikTok", "No", 3.0, 5, 7, 7.5, 1),
		surveyRow("Female", "High School", "Complicated", "Instagram", "Yes", 6.0, 9, 4, 5.0, 4),
		surveyRow("Male", "Undergraduate", "Single", "Facebook", "No", 2.0, 4, 8, 8.0, 0),
		surveyRow("Female", "Graduate", "Single", "TikTok", "Yes", 4.5, 7, 6, 6.5, 2),
		surveyRow("Male", "Undergraduate", "Complicated", "YouTube", "No", 3.5, 6, 6, 7.0, 2),
	}
}

func sampleDataset() *Dataset { return NewDataset(sampleRows()) }

// genderSplitRows returns 100 students: 52 Female then 48 Male.
func genderSplitRows() []Row {
	levels := []string{"High School", "Undergraduate", "Graduate"}
	statuses := []string{"Single", "In Relationship", "Complicated"}
	platforms := []string{"Instagram", "TikTok", "Facebook", "YouTube", "WhatsApp"}

	rows := make([]Row, 0, 100)
	for i := 0; i < 100; i++ {
		gender := "Male"
		if i < 52 {
			gender = "Female"
		}
		impact := "No"
		if i%3 == 0 {
			impact = "Yes"
		}
		r := surveyRow(gender, levels[i%3], statuses[(i/3)%3], platforms[i%5], impact,
			2+float64(i%7)*0.5, float64(3+i%7), float64(9-i%6), 5+float64(i%4)*0.75, float64(i%5))
		r.StudentID = i + 1
		r.Country = fmt.Sprintf("C%d", i%4)
		rows = append(rows, r)
	}
	return rows
}
