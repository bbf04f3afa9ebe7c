package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Mmneaa/GradApp-Back-End-V2/internal/models"
	"github.com/Mmneaa/GradApp-Back-End-V2/internal/repository"
)

type SetScheduleRequest struct {
	Schedule []time.Time `json:"schedule" binding:"required"`
}

// SetSchedule replaces the doctor's entire availability list. There is no
// incremental add; the submitted list is the new schedule.
func (h *Handler) SetSchedule(c *gin.Context) {
	doctor, ok := currentUser(c)
	if !ok {
		return
	}

	var req SetScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	doctor.ScheduleList = req.Schedule
	if err := h.Users.Save(c.Request.Context(), doctor); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set schedule"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Schedule set successfully"})
}

// GetSchedule returns the doctor's own availability list.
func (h *Handler) GetSchedule(c *gin.Context) {
	doctor, ok := currentUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, doctor.ScheduleList)
}

type ReservationRequest struct {
	DoctorID string    `json:"doctorId" binding:"required"`
	DateTime time.Time `json:"dateTime" binding:"required"`
}

// MakeReservation books a (doctor, dateTime) slot. The unique compound index
// is the real guard; two concurrent bookings for the same slot cannot both
// pass it.
func (h *Handler) MakeReservation(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req ReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	doctorID, err := primitive.ObjectIDFromHex(req.DoctorID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid doctor ID"})
		return
	}

	ctx := c.Request.Context()
	doctor, err := h.Users.FindByID(ctx, doctorID)
	if err != nil || doctor.AccountType != models.RoleDoctor {
		c.JSON(http.StatusNotFound, gin.H{"error": "Doctor not found"})
		return
	}

	appointment := models.Appointment{
		UserID:   user.ID,
		DoctorID: doctorID,
		DateTime: req.DateTime,
	}

	if err := h.Appointments.Create(ctx, &appointment); err != nil {
		if repository.IsDuplicate(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Time slot already booked."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create appointment"})
		return
	}

	c.JSON(http.StatusCreated, appointment)
}

// GetReservations lists the principal's own bookings with doctor names
// resolved, soonest first.
func (h *Handler) GetReservations(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	reservations, err := h.Appointments.FindByUser(ctx, user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve reservations"})
		return
	}

	c.JSON(http.StatusOK, h.resolveAppointmentNames(c, reservations, true))
}

// GetDoctorReservations lists bookings against the doctor's slots with
// patient names resolved, soonest first.
func (h *Handler) GetDoctorReservations(c *gin.Context) {
	doctor, ok := currentUser(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	reservations, err := h.Appointments.FindByDoctor(ctx, doctor.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve reservations"})
		return
	}

	c.JSON(http.StatusOK, h.resolveAppointmentNames(c, reservations, false))
}

// resolveAppointmentNames fills in the counterpart's username: the doctor's
// for a patient listing, the patient's for a doctor listing.
func (h *Handler) resolveAppointmentNames(c *gin.Context, appointments []models.Appointment, resolveDoctor bool) []models.AppointmentView {
	ids := make([]primitive.ObjectID, 0, len(appointments))
	seen := make(map[primitive.ObjectID]bool)
	for _, apt := range appointments {
		id := apt.UserID
		if resolveDoctor {
			id = apt.DoctorID
		}
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	names := make(map[primitive.ObjectID]string)
	if users, err := h.Users.FindByIDs(c.Request.Context(), ids); err == nil {
		for _, user := range users {
			names[user.ID] = user.Username
		}
	}

	views := make([]models.AppointmentView, 0, len(appointments))
	for _, apt := range appointments {
		view := models.AppointmentView{Appointment: apt}
		if resolveDoctor {
			view.DoctorName = names[apt.DoctorID]
		} else {
			view.UserName = names[apt.UserID]
		}
		views = append(views, view)
	}
	return views
}
