package timeentry

type CreateTimeEntryRequest struct {
	Date         string `json:"date" binding:"required"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	NietGewerkt  bool   `json:"niet_gewerkt"`
	Verlof       bool   `json:"verlof"`
	Ziek         bool   `json:"ziek"`
	Recup        bool   `json:"recup"`
	Rechtstreeks bool   `json:"rechtstreeks"`
	Bonnummer    string `json:"bonnummer"`
	Comment      string `json:"comment"`
}

type UpdateTimeEntryRequest struct {
	Date         string `json:"date" binding:"required"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	NietGewerkt  bool   `json:"niet_gewerkt"`
	Verlof       bool   `json:"verlof"`
	Ziek         bool   `json:"ziek"`
	Recup        bool   `json:"recup"`
	Rechtstreeks bool   `json:"rechtstreeks"`
	Bonnummer    string `json:"bonnummer"`
	Comment      string `json:"comment"`
}

type TimeEntryResponse struct {
	ID              string `json:"id"`
	UserID          string `json:"user_id"`
	Date            string `json:"date"`
	StartTime       string `json:"start_time,omitempty"`
	EndTime         string `json:"end_time,omitempty"`
	NietGewerkt     bool   `json:"niet_gewerkt"`
	Verlof          bool   `json:"verlof"`
	Ziek            bool   `json:"ziek"`
	Recup           bool   `json:"recup"`
	Rechtstreeks    bool   `json:"rechtstreeks"`
	Bonnummer       string `json:"bonnummer,omitempty"`
	Comment         string `json:"comment,omitempty"`
	StatusLabel     string `json:"status_label"`
	DurationMinutes int    `json:"duration_minutes"`
}

type SummaryDayResponse struct {
	Date         string `json:"date"`
	DateLabel    string `json:"date_label"`
	StatusLabel  string `json:"status_label"`
	DurationText string `json:"duration_text,omitempty"`
	Comment      string `json:"comment,omitempty"`
	Bonnummer    string `json:"bonnummer,omitempty"`
	Rechtstreeks string `json:"rechtstreeks"`
}

type SummaryResponse struct {
	Title             string               `json:"title"`
	Days              []SummaryDayResponse `json:"days"`
	TotalMinutes      int                  `json:"total_minutes"`
	TotalText         string               `json:"total_text"`
	WorkedDays        int                  `json:"worked_days"`
	NightMinutes      int                  `json:"night_minutes"`
	SundayMinutes     int                  `json:"sunday_minutes"`
	TravelTimeMinutes int                  `json:"travel_time_minutes"`
}
