package content

import "time"

// LeaderTemplates returns the canned leadership profiles offered when adding
// a team member. Each call returns fresh copies.
func LeaderTemplates() []Leader {
	return []Leader{
		{
			Name:       "Chief Sustainability Officer",
			Title:      "Chief Sustainability Officer",
			Bio:        "Driving GreenLine's sustainability initiatives with 15+ years of experience in environmental policy and sustainable development. Previously worked with UNEP on African sustainability projects.",
			Department: "executive",
			Expertise:  []string{"sustainability", "leadership", "strategy"},
		},
		{
			Name:       "Head of Agriculture",
			Title:      "Head of Sustainable Agriculture",
			Bio:        "Agricultural scientist specializing in organic farming and sustainable food systems. PhD in Agricultural Sciences with extensive field experience across West Africa.",
			Department: "agriculture",
			Expertise:  []string{"sustainability", "operations", "innovation"},
		},
		{
			Name:       "Marketing Director",
			Title:      "Director of Strategic Marketing",
			Bio:        "Expert in sustainable brand development and eco-conscious marketing strategies. Has led successful campaigns for multiple sustainable brands across Africa.",
			Department: "marketing",
			Expertise:  []string{"marketing", "strategy", "innovation"},
		},
	}
}

// ApplyTemplate fills the blank fields of l from tmpl.
func ApplyTemplate(l, tmpl Leader) Leader {
	if l.Name == "" {
		l.Name = tmpl.Name
	}
	if l.Title == "" {
		l.Title = tmpl.Title
	}
	if l.Bio == "" {
		l.Bio = tmpl.Bio
	}
	if l.Department == "" {
		l.Department = tmpl.Department
	}
	if len(l.Expertise) == 0 {
		l.Expertise = append([]string(nil), tmpl.Expertise...)
	}
	return l
}

// Sample is a demo data set used to populate an empty console.
type Sample struct {
	Pictures   []Picture
	Leaders    []Leader
	Activities []Activity
}

// SampleData returns the demo data set dated relative to now.
func SampleData(now time.Time) Sample {
	now = now.UTC().Truncate(time.Millisecond)
	day := 24 * time.Hour
	return Sample{
		Pictures: []Picture{
			{
				ID:        1,
				URL:       "https://images.unsplash.com/photo-1542601906990-b4d3fb778b09.jpg",
				Alt:       "Sustainable agriculture field with green crops",
				Page:      "home",
				Section:   "banner",
				Tags:      []string{"agriculture", "sustainable", "field"},
				DateAdded: now,
				Size:      "1920x1080",
				Format:    "JPG",
			},
			{
				ID:        2,
				URL:       "https://images.unsplash.com/photo-1486406146926-c627a92ad1ab.jpg",
				Alt:       "Modern sustainable building architecture",
				Page:      "home",
				Section:   "content",
				Tags:      []string{"architecture", "sustainable", "building"},
				DateAdded: now.Add(-day),
				Size:      "1920x1080",
				Format:    "JPG",
			},
			{
				ID:        3,
				URL:       "https://images.unsplash.com/photo-1497366754035-f200968a6e72.jpg",
				Alt:       "Team collaboration meeting for sustainability project",
				Page:      "strategic-marketing",
				Section:   "team",
				Tags:      []string{"team", "meeting", "collaboration"},
				DateAdded: now.Add(-2 * day),
				Size:      "1920x1080",
				Format:    "JPG",
			},
		},
		Leaders: []Leader{
			{
				ID:         101,
				Name:       "Alex Johnson",
				Title:      "Chief Sustainability Officer",
				Bio:        "Over 15 years of experience in sustainable development and environmental policy. PhD in Environmental Science from Cambridge. Previously worked with UNEP on African sustainability projects.",
				Photo:      "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d.jpg",
				Department: "executive",
				Order:      1,
				Expertise:  []string{"sustainability", "leadership", "strategy", "policy"},
				DateAdded:  now,
			},
			{
				ID:         102,
				Name:       "Maria Rodriguez",
				Title:      "Head of Sustainable Agriculture",
				Bio:        "Agricultural scientist with expertise in organic farming and sustainable food systems. PhD in Agricultural Sciences with extensive field experience across West Africa.",
				Photo:      "https://images.unsplash.com/photo-1494790108755-2616b612b786.jpg",
				Department: "agriculture",
				Order:      2,
				Expertise:  []string{"agriculture", "sustainability", "operations", "innovation"},
				DateAdded:  now.Add(-day),
			},
		},
		Activities: []Activity{
			{
				Title:       "Admin Panel Launched",
				Description: "GreenLine Admin Panel successfully deployed and ready for use",
				Category:    CategorySuccess,
				Icon:        "fa-rocket",
				Time:        "2 days ago",
			},
			{
				Title:       "Sample Data Loaded",
				Description: "Demo content added for testing and demonstration",
				Category:    CategoryInfo,
				Icon:        "fa-database",
				Time:        JustNow,
			},
		},
	}
}
