package deckdraw_grpc_service

import (
	"context"

	"google.golang.org/grpc"
)

// Wire messages for the deck draw service. They travel through the JSON
// codec, so only the json tags matter on the wire.

type GetStateRequest struct{}

type GetStateResponse struct {
	Deck      string   `json:"deck"`
	Mode      string   `json:"mode"`
	Round     uint64   `json:"round"`
	Drawn     int      `json:"drawn"`
	Remaining []string `json:"remaining"`
}

type DrawRequest struct {
	Count int32 `json:"count"`
}

type DrawResponse struct {
	RequestId uint64 `json:"request_id"`
	Item      string `json:"item"`
	Error     string `json:"error,omitempty"`
}

// DeckServiceServer is the server API for the deck draw service.
type DeckServiceServer interface {
	GetState(context.Context, *GetStateRequest) (*GetStateResponse, error)
	Draw(DeckService_DrawServer) error
}

// DeckService_DrawServer is the server side of the bidirectional Draw stream.
type DeckService_DrawServer interface {
	Send(*DrawResponse) error
	Recv() (*DrawRequest, error)
	grpc.ServerStream
}

type deckServiceDrawServer struct {
	grpc.ServerStream
}

func (x *deckServiceDrawServer) Send(m *DrawResponse) error {
	return x.ServerStream.SendMsg(m)
}

func (x *deckServiceDrawServer) Recv() (*DrawRequest, error) {
	m := new(DrawRequest)
	if err := x.ServerStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

func getStateHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetStateRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DeckServiceServer).GetState(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/deckdraw.DeckService/GetState",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(DeckServiceServer).GetState(ctx, req.(*GetStateRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func drawHandler(srv interface{}, stream grpc.ServerStream) error {
	return srv.(DeckServiceServer).Draw(&deckServiceDrawServer{stream})
}

// deckServiceDesc is the hand-rolled descriptor; there is no .proto file,
// the JSON codec carries the payloads.
var deckServiceDesc = grpc.ServiceDesc{
	ServiceName: "deckdraw.DeckService",
	HandlerType: (*DeckServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetState",
			Handler:    getStateHandler,
		},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "Draw",
			Handler:       drawHandler,
			ServerStreams: true,
			ClientStreams: true,
		},
	},
	Metadata: "deckdraw",
}

// RegisterDeckServiceServer registers srv on the given gRPC server.
func RegisterDeckServiceServer(s *grpc.Server, srv DeckServiceServer) {
	s.RegisterService(&deckServiceDesc, srv)
}
