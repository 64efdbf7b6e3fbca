// Package services holds the business logic of BenchTrack. Each service is
// an interface backed by an unexported implementation that receives its
// repositories and collaborators through its constructor.
//
// Services defined in this package:
//   - AuthService: registration, login, refresh token rotation and logout
//   - ConsultantService: consultant profiles, skills and dashboards
//   - OpportunityService: opportunities, applications, decisions and matching
//   - AttendanceService: attendance records, summaries and the chatbot
//   - ResumeService: resume upload, extraction and analysis
//   - TrainingService: recommendations, skill gaps, plans and enrollments
//   - ReportService: consultant reports
//   - DashboardService: admin metrics and health
//   - NotificationService: admin notifications and their live feed
package services
