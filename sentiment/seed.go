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

package sentiment

// Seed corpus used to train every classifier returned by NewClassifier.
// The sentences are kept exactly as they were collected, typos included,
// since changing them shifts every trained probability.
var (
	seedPositive = []string{
		"The battery life is amazing and lasts all day",
		"Fast shipping and excellent quality product",
		"I love this phone it works perfectly",
		"Great value for the price recommmended",
		"Screen is beautiful and very bright",
		"Sound quality is superb and crisp",
		"Easy to setup and very user friendly",
		"Best purchase I have made this year",
		"Customer service was helpful and polite",
		"Durable and well built construction",
		"Super fast processor and lots of ram",
		"Camera takes stunning photos at night",
		"Very happy with this performance",
		"Exceeded my expectations in every way",
		"Highly recommend to anyone looking for quality",
	}

	seedNegative = []string{
		"The screen cracked after one day of use",
		"Terrible battery life drains in an hour",
		"Slow shipping and arrived damaged",
		"Waste of money do not buy this garbage",
		"Customer service was rude and unhelpful",
		"Product stopped working after a week",
		"Poor quality materials feel very cheap",
		"Overheating issues when playing games",
		"The sound is muffled and quiet",
		"Hard to use and keeping freezing",
		"Worst experience ever avoided this brand",
		"Not worth the price at all rip off",
		"Buttons are loose and rattle",
		"Software is buggy and crashes often",
		"False advertising does not have features",
	}
)
