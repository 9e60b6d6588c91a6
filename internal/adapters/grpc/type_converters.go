package grpc

import (
	"encoding/json"
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// toStruct converts a JSON-tagged value into a protobuf Struct
func toStruct(v interface{}) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode payload: %w", err)
	}

	s := &structpb.Struct{}
	if err := protojson.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("failed to convert payload: %w", err)
	}
	return s, nil
}

// fromStruct decodes a protobuf Struct into a JSON-tagged value
func fromStruct(s *structpb.Struct, v interface{}) error {
	if s == nil {
		s = &structpb.Struct{}
	}

	data, err := protojson.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to convert payload: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode payload: %w", err)
	}
	return nil
}
