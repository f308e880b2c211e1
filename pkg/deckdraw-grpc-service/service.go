package deckdraw_grpc_service

import (
	"context"
	"io"
	"net"

	"github.com/hntran/tiny-drill-deck-go/internal/actor"
	"github.com/hntran/tiny-drill-deck-go/internal/types"
	"google.golang.org/grpc"
)

// ActorSystem is an interface that actor.System implements.
type ActorSystem interface {
	State() types.SessionState
	Draw() actor.DrawResponse
	DrawMany(count int) actor.DrawManyResponse
	Stop()
	GetRequestID() uint64
	SetRequestID(id uint64)
}

// DeckService is a gRPC service that exposes the drill deck functionality.
type DeckService struct {
	system ActorSystem
}

var _ DeckServiceServer = (*DeckService)(nil)

// NewDeckService creates a new DeckService.
func NewDeckService(system ActorSystem) *DeckService {
	return &DeckService{
		system: system,
	}
}

// ListenAndServe starts the gRPC server.
func ListenAndServe(ctx context.Context, system ActorSystem, listenAddress string) error {
	lis, err := net.Listen("tcp", listenAddress)
	if err != nil {
		return err
	}
	s := grpc.NewServer(grpc.ForceServerCodec(jsonCodec{}))
	grpcService := NewDeckService(system)
	RegisterDeckServiceServer(s, grpcService)

	go func() {
		<-ctx.Done()
		s.GracefulStop()
	}()

	return s.Serve(lis)
}

// GetState returns the current state of the drill session.
func (s *DeckService) GetState(ctx context.Context, req *GetStateRequest) (*GetStateResponse, error) {
	state := s.system.State()
	mode := "refilling"
	if state.Mode == types.ModeShrinking {
		mode = "shrinking"
	}
	return &GetStateResponse{
		Deck:      state.Deck,
		Mode:      mode,
		Round:     state.Round,
		Drawn:     state.Drawn,
		Remaining: state.Remaining,
	}, nil
}

// Draw serves a bidirectional stream: each request asks for count draws and
// each draw comes back as its own response.
func (s *DeckService) Draw(stream DeckService_DrawServer) error {
	for {
		req, err := stream.Recv()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		count := req.Count
		if count <= 0 {
			count = 1
		}

		for i := 0; i < int(count); i++ {
			resp := s.system.Draw()
			var errMsg string
			if resp.Err != nil {
				errMsg = resp.Err.Error()
			}
			if err := stream.Send(&DrawResponse{
				RequestId: resp.RequestID,
				Item:      resp.Item,
				Error:     errMsg,
			}); err != nil {
				return err
			}
		}
	}
}
