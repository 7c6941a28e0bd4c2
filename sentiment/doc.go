// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package sentiment implements a multinomial Naive Bayes classifier that
// scores free text on a scale from negative to positive.
//
// A classifier returned by NewClassifier is pre-trained on a small corpus of
// product review sentences, so it can be used without any external training
// data. Further examples can be added with Train at any time.
package sentiment
