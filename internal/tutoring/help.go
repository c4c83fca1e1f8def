package tutoring

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// RequestHelp files a help ticket for any known user and returns it with
// the desk's automatic response.
func (s *System) RequestHelp(ctx context.Context, userID, channel, question string) (*HelpTicketView, error) {
	if _, err := s.catalog.User(userID); err != nil {
		return nil, err
	}
	unlock := s.lockUser(userID)
	defer unlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	ticket, err := s.desk.Draft(userID, channel, question)
	if err != nil {
		return nil, err
	}
	if err := s.store.SaveHelpTickets(ctx, s.desk.With(ticket)); err != nil {
		return nil, fmt.Errorf("save help tickets: %w", err)
	}
	s.desk.Commit(ticket)

	s.log.Info("help requested",
		zap.String("user", userID),
		zap.String("ticket", ticket.TicketID),
		zap.String("channel", channel))

	v := ticketView(ticket)
	return &v, nil
}
