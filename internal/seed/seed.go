// Hack-Hunt - Hackathon Aggregation and Skill-Based Recommendation
// Copyright 2026 Prem (prem22k)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/prem22k/Hack-Hunt

// Package seed provides a fixed sample of hackathons for demos and local
// development.
//
// The sample is exposed as ordinary sources.Source adapters, one per origin,
// so loading it goes through the same orchestrator, upserter and identity
// rules as a real ingestion run. Seeding twice updates the same records.
package seed

import (
	"context"
	"time"

	"github.com/prem22k/Hack-Hunt/internal/models"
	"github.com/prem22k/Hack-Hunt/internal/sources"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

// Hackathons returns a fresh copy of the sample dataset.
func Hackathons() []models.Hackathon {
	return []models.Hackathon{
		{
			Title:           "HackMIT 2025",
			Organizer:       "MIT",
			Description:     "Join 1000+ hackers for MIT's premier annual hackathon. Build innovative solutions over 24 hours.",
			StartDate:       day(2025, time.February, 15),
			EndDate:         day(2025, time.February, 16),
			Location:        "Cambridge, MA",
			Mode:            models.ModeOffline,
			Prize:           "$50,000",
			Skills:          []string{"React", "Python", "Machine Learning", "Web3"},
			RegistrationURL: "https://hackmit.org",
			Source:          models.SourceMLH,
		},
		{
			Title:           "Global AI Hackathon",
			Organizer:       "Google Developer Groups",
			Description:     "Build AI-powered solutions to solve global challenges. Open to developers worldwide.",
			StartDate:       day(2025, time.March, 1),
			EndDate:         day(2025, time.March, 3),
			Location:        "Online",
			Mode:            models.ModeOnline,
			Prize:           "$100,000",
			Skills:          []string{"TensorFlow", "Python", "Cloud Computing", "NLP"},
			RegistrationURL: "https://gdg.community.dev",
			Source:          models.SourceKaggle,
		},
		{
			Title:           "FinTech Innovation Challenge",
			Organizer:       "JP Morgan Chase",
			Description:     "Revolutionize financial services with cutting-edge technology solutions.",
			StartDate:       day(2025, time.March, 20),
			EndDate:         day(2025, time.March, 22),
			Location:        "New York, NY",
			Mode:            models.ModeHybrid,
			Prize:           "$75,000",
			Skills:          []string{"Blockchain", "React", "Node.js", "Smart Contracts"},
			RegistrationURL: "https://jpmorgan.com/hackathon",
			Source:          models.SourceDevpost,
		},
		{
			Title:           "Health Tech Hack",
			Organizer:       "Stanford Medicine",
			Description:     "Create healthcare innovations that improve patient outcomes and medical research.",
			StartDate:       day(2025, time.April, 5),
			EndDate:         day(2025, time.April, 7),
			Location:        "Palo Alto, CA",
			Mode:            models.ModeOffline,
			IsPaid:          true,
			Prize:           "$30,000",
			Skills:          []string{"Healthcare AI", "Mobile Development", "Data Science", "IoT"},
			RegistrationURL: "https://stanford.edu/healthhack",
			Source:          models.SourceMLH,
		},
		{
			Title:           "Climate Action Hackathon",
			Organizer:       "UN Environment Programme",
			Description:     "Develop sustainable solutions to combat climate change and environmental challenges.",
			StartDate:       day(2025, time.April, 22),
			EndDate:         day(2025, time.April, 24),
			Location:        "Online",
			Mode:            models.ModeOnline,
			Prize:           "$25,000",
			Skills:          []string{"Sustainability", "IoT", "Data Analytics", "GIS"},
			RegistrationURL: "https://unep.org/hackathon",
			Source:          models.SourceKaggle,
		},
		{
			Title:           "EdTech Innovate",
			Organizer:       "Coursera & edX",
			Description:     "Transform education through technology. Build the future of learning.",
			StartDate:       day(2025, time.May, 10),
			EndDate:         day(2025, time.May, 12),
			Location:        "San Francisco, CA",
			Mode:            models.ModeHybrid,
			Prize:           "$40,000",
			Skills:          []string{"EdTech", "LMS", "AI/ML", "Gamification"},
			RegistrationURL: "https://edtechinnovate.com",
			Source:          models.SourceDevpost,
		},
		{
			Title:           "Web3 Builders Summit",
			Organizer:       "Ethereum Foundation",
			Description:     "Build decentralized applications that shape the future of the internet.",
			StartDate:       day(2025, time.May, 25),
			EndDate:         day(2025, time.May, 27),
			Location:        "Denver, CO",
			Mode:            models.ModeOffline,
			IsPaid:          true,
			Prize:           "$150,000",
			Skills:          []string{"Solidity", "Web3.js", "Smart Contracts", "DeFi"},
			RegistrationURL: "https://ethereum.org/hackathon",
			Source:          models.SourceMLH,
		},
		{
			Title:           "Space Apps Challenge",
			Organizer:       "NASA",
			Description:     "Use NASA data to solve challenges on Earth and in space exploration.",
			StartDate:       day(2025, time.June, 14),
			EndDate:         day(2025, time.June, 16),
			Location:        "Online",
			Mode:            models.ModeOnline,
			Prize:           "$20,000",
			Skills:          []string{"Data Science", "Python", "GIS", "Visualization"},
			RegistrationURL: "https://nasa.gov/spaceapps",
			Source:          models.SourceKaggle,
		},
		{
			Title:           "Hyderabad Open Source Sprint",
			Organizer:       "Devfolio Community",
			Description:     "A weekend of shipping to open source projects with mentors from the Indian OSS community.",
			StartDate:       day(2025, time.July, 12),
			EndDate:         day(2025, time.July, 13),
			Location:        "Hyderabad, India",
			Mode:            models.ModeOffline,
			Skills:          []string{"Go", "Rust", "Open Source", "DevOps"},
			RegistrationURL: "https://devfolio.co/hackathons",
			Source:          models.SourceDevfolio,
		},
	}
}

// Source serves the slice of the sample that belongs to one origin.
type Source struct {
	name    models.Source
	records []models.Hackathon
}

// Name implements sources.Source.
func (s *Source) Name() models.Source { return s.name }

// Fetch implements sources.Source. It returns a copy so callers may mutate
// the result.
func (s *Source) Fetch(ctx context.Context) ([]models.Hackathon, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]models.Hackathon, len(s.records))
	copy(out, s.records)
	for i := range out {
		out[i].Skills = append([]string(nil), s.records[i].Skills...)
	}
	return out, nil
}

// NewRegistry registers one seed source per origin present in the sample,
// in models.AllSources order.
func NewRegistry() *sources.Registry {
	bySource := make(map[models.Source][]models.Hackathon)
	for _, h := range Hackathons() {
		bySource[h.Source] = append(bySource[h.Source], h)
	}

	reg := sources.NewRegistry()
	for _, name := range models.AllSources {
		records, ok := bySource[name]
		if !ok {
			continue
		}
		// Names are unique by construction.
		_ = reg.Register(&Source{name: name, records: records})
	}
	return reg
}
