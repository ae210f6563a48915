package view

import (
	"github.com/ericnguyen1274/Customer---App/core/catalog"
	"github.com/ericnguyen1274/Customer---App/core/purchase"
)

// Sample data shown, flagged, when a fetch fails and placeholders are enabled.
var (
	placeholderCategories = []catalog.Category{
		{DocID: "1", CategoryID: 1, Name: "Beginner Yoga", CategoryName: "Beginner Yoga"},
		{DocID: "2", CategoryID: 2, Name: "Advanced Yoga", CategoryName: "Advanced Yoga"},
		{DocID: "3", CategoryID: 6, Name: "JBL Yoga", CategoryName: "JBL Yoga"},
		{DocID: "4", CategoryID: 11, Name: "Hyper Yoga", CategoryName: "Hyper Yoga"},
	}

	placeholderCourses = []catalog.Course{
		{
			DocID: "1", CourseID: 1, Name: "Mindful Meditation",
			Description: "Learn deep breathing techniques and mindfulness practices for inner peace and stress relief.",
			Price:       2499, Duration: 60, Capacity: 20, DayOfWeek: "Monday", Time: "09:00 AM",
			CategoryID: 1, TeacherID: 1,
		},
		{
			DocID: "2", CourseID: 2, Name: "Power Flow Yoga",
			Description: "High-energy vinyasa flow sequences to build strength, flexibility, and endurance.",
			Price:       3499, Duration: 90, Capacity: 15, DayOfWeek: "Wednesday", Time: "10:00 AM",
			CategoryID: 2, TeacherID: 2,
		},
		{
			DocID: "3", CourseID: 3, Name: "Restorative Yoga",
			Description: "Gentle poses and relaxation techniques to restore your body and calm your mind.",
			Price:       1999, Duration: 75, Capacity: 25, DayOfWeek: "Friday", Time: "06:00 PM",
			CategoryID: 1, TeacherID: 3,
		},
	}

	placeholderTeachers = []catalog.Teacher{
		{
			DocID: "1", TeacherID: 1, Name: "Sarah Johnson",
			Bio: "Certified yoga instructor specializing in mindfulness and meditation techniques. " +
				"Helps students find inner peace through gentle yoga practices.",
		},
		{
			DocID: "2", TeacherID: 2, Name: "Michael Chen",
			Bio: "Advanced power yoga instructor focusing on strength and flexibility. " +
				"Creates dynamic flows that challenge and energize students.",
		},
		{
			DocID: "3", TeacherID: 3, Name: "Emma Rodriguez",
			Bio: "Gentle yoga instructor specializing in restorative and therapeutic practices. " +
				"Helps students recover and relax through mindful movement.",
		},
	}

	placeholderPayments = []purchase.Payment{
		{DocID: "1", PaymentID: 1, CustomerID: 1, Amount: 500, Date: "2025-01-15"},
		{DocID: "2", PaymentID: 2, CustomerID: 1, Amount: 750, Date: "2025-01-10"},
		{DocID: "3", PaymentID: 3, CustomerID: 1, Amount: 300, Date: "2025-01-05"},
	}
)

// pick returns items when placeholders are enabled, nil otherwise.
func pick[T any](enabled bool, items []T) []T {
	if !enabled {
		return nil
	}
	return items
}
